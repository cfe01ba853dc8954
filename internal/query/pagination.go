package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/catalog-api/internal/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// Pagination is the resolved page window of a list request.
type Pagination struct {
	Page  int
	Limit int
}

// Skip is the number of records before the requested page.
func (p Pagination) Skip() int {
	return (p.Page - 1) * p.Limit
}

// ResolvePagination reads page and limit from raw parameters. Missing, empty,
// zero, non-integer or repeated values fall back to the defaults; negative
// values are rejected; limit is clamped to maxLimit. A page whose skip does
// not fit in an int is rejected.
func ResolvePagination(raw map[string]any, defaultLimit, maxLimit int) (Pagination, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	page, err := intWithDefault(raw, "page", DefaultPage)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := intWithDefault(raw, "limit", defaultLimit)
	if err != nil {
		return Pagination{}, err
	}
	limit = min(limit, maxLimit)
	if page-1 > math.MaxInt/limit {
		return Pagination{}, apperr.BadRequest("page %d is out of range", page)
	}
	return Pagination{Page: page, Limit: limit}, nil
}

func intWithDefault(raw map[string]any, key string, def int) (int, error) {
	s, ok := raw[key].(string)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return def, nil
	}
	if n < 0 {
		return 0, apperr.BadRequest("%s must be a positive integer", key)
	}
	return n, nil
}
