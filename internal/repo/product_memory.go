package repo

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/catalog-api/internal/models"
	"github.com/rogerio-castellano/catalog-api/internal/query"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order, which is the default list order.
type InMemoryProductRepository struct {
	mu         sync.RWMutex
	products   []models.Product
	categories map[string]models.Category
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products:   []models.Product{},
		categories: map[string]models.Category{},
	}
}

// AddCategory registers a category products can reference.
func (r *InMemoryProductRepository) AddCategory(name string) models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := models.Category{ID: uuid.NewString(), Name: name}
	r.categories[c.ID] = c
	return c
}

// Clear removes every product.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func (r *InMemoryProductRepository) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *InMemoryProductRepository) Find(ctx context.Context, q query.ProductQuery) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Product
	for _, p := range r.products {
		if matchesFilter(p, q.Filter) {
			matched = append(matched, p)
		}
	}

	if len(q.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return lessBy(matched[i], matched[j], q.Sort)
		})
	}

	start := min(max(q.Pagination.Skip(), 0), len(matched))
	end := len(matched)
	if q.Pagination.Limit > 0 {
		end = min(start+q.Pagination.Limit, len(matched))
	}

	out := make([]models.Product, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, r.populate(p))
	}
	return out, nil
}

func (r *InMemoryProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.populate(r.products[i]), nil
}

func (r *InMemoryProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Category = nil
	r.products = append(r.products, clone(product))
	return r.populate(product), nil
}

func (r *InMemoryProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	patch.Apply(&r.products[i])
	r.products[i].UpdatedAt = time.Now().UTC()
	return r.populate(r.products[i]), nil
}

func (r *InMemoryProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products = slices.Delete(r.products, i, i+1)
	return nil
}

func (r *InMemoryProductRepository) indexOf(id string) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// populate returns a copy of p with its category expanded.
func (r *InMemoryProductRepository) populate(p models.Product) models.Product {
	p = clone(p)
	p.Category = nil
	if c, ok := r.categories[p.CategoryID]; ok {
		p.Category = &models.CategoryRef{Name: c.Name}
	}
	return p
}

func clone(p models.Product) models.Product {
	p.Colors = slices.Clone(p.Colors)
	p.Images = slices.Clone(p.Images)
	if p.PriceAfterDiscount != nil {
		v := *p.PriceAfterDiscount
		p.PriceAfterDiscount = &v
	}
	if p.RatingsAverage != nil {
		v := *p.RatingsAverage
		p.RatingsAverage = &v
	}
	return p
}

func fieldValue(p models.Product, field string) any {
	switch field {
	case "title":
		return p.Title
	case "slug":
		return p.Slug
	case "quantity":
		return p.Quantity
	case "sold":
		return p.Sold
	case "price":
		return p.Price
	case "price_after_discount":
		if p.PriceAfterDiscount == nil {
			return nil
		}
		return *p.PriceAfterDiscount
	case "colors":
		return p.Colors
	case "category":
		return p.CategoryID
	case "ratings_average":
		if p.RatingsAverage == nil {
			return nil
		}
		return *p.RatingsAverage
	case "ratings_quantity":
		return p.RatingsQuantity
	case "created_at":
		return p.CreatedAt
	case "updated_at":
		return p.UpdatedAt
	}
	return nil
}

func matchesFilter(p models.Product, conds []query.Condition) bool {
	for _, c := range conds {
		v := fieldValue(p, c.Field)
		switch c.Op {
		case query.OpEq:
			if !equalValue(v, c.Value) {
				return false
			}
		case query.OpIn:
			candidates, _ := c.Value.([]any)
			if !slices.ContainsFunc(candidates, func(want any) bool { return equalValue(v, want) }) {
				return false
			}
		default:
			if !compareNumber(v, c.Op, c.Value) {
				return false
			}
		}
	}
	return true
}

func equalValue(v, want any) bool {
	if list, ok := v.([]string); ok {
		return slices.ContainsFunc(list, func(s string) bool { return equalValue(s, want) })
	}
	if a, ok := toFloat(v); ok {
		b, ok := toFloat(want)
		return ok && a == b
	}
	s, ok := v.(string)
	w, wok := want.(string)
	return ok && wok && s == w
}

func compareNumber(v any, op string, operand any) bool {
	a, ok := toFloat(v)
	if !ok {
		return false
	}
	b, ok := toFloat(operand)
	if !ok {
		return false
	}
	switch op {
	case query.OpGt:
		return a > b
	case query.OpGte:
		return a >= b
	case query.OpLt:
		return a < b
	case query.OpLte:
		return a <= b
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// lessBy orders missing values first, as the document store does.
func lessBy(a, b models.Product, keys []query.SortField) bool {
	for _, k := range keys {
		c := compareValues(fieldValue(a, k.Field), fieldValue(b, k.Field))
		if c == 0 {
			continue
		}
		if k.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if x, ok := toFloat(a); ok {
		y, _ := toFloat(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	if x, ok := a.(time.Time); ok {
		return x.Compare(b.(time.Time))
	}
	return strings.Compare(a.(string), b.(string))
}
