package query

import "net/url"

// Populate declares a related document to expand and the subfields to keep.
// The related identifier is never part of the expansion.
type Populate struct {
	Path   string
	Select []string
}

// CategoryExpansion expands a product's category to its name.
var CategoryExpansion = Populate{Path: "category", Select: []string{"name"}}

// ProductQuery is a validated, bounded read against the product store.
type ProductQuery struct {
	Filter     []Condition
	Sort       []SortField
	Fields     []string
	Pagination Pagination
	Populate   Populate
}

// Composer turns untrusted list parameters into a ProductQuery.
type Composer struct {
	Schema       *Schema
	DefaultLimit int
	MaxLimit     int
}

// NewComposer returns a composer for the product schema.
func NewComposer(defaultLimit, maxLimit int) *Composer {
	return &Composer{Schema: ProductSchema, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

// Compose parses, sanitizes, rewrites and guards the filter, resolves
// pagination, sort and field selection, and attaches the category expansion.
func (c *Composer) Compose(values url.Values) (ProductQuery, error) {
	raw := ParseValues(values)

	filter, err := c.Schema.Guard(RewriteOperators(Sanitize(raw)))
	if err != nil {
		return ProductQuery{}, err
	}

	page, err := ResolvePagination(raw, c.DefaultLimit, c.MaxLimit)
	if err != nil {
		return ProductQuery{}, err
	}

	sortBy, err := c.Schema.ParseSort(raw["sort"])
	if err != nil {
		return ProductQuery{}, err
	}

	fields, err := c.Schema.ParseFields(raw["fields"])
	if err != nil {
		return ProductQuery{}, err
	}

	return ProductQuery{
		Filter:     filter,
		Sort:       sortBy,
		Fields:     fields,
		Pagination: page,
		Populate:   CategoryExpansion,
	}, nil
}
