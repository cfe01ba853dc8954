package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/catalog-api/internal/models"
	"github.com/rogerio-castellano/catalog-api/internal/query"
)

// ProductRepository defines the interface for product data operations.
// Reads expand the product's category to its name.
type ProductRepository interface {
	Find(ctx context.Context, q query.ProductQuery) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	Delete(ctx context.Context, id string) error
	// ValidID reports whether id is well formed for this store.
	ValidID(id string) bool
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidID is returned when an identifier is malformed for the store.
var ErrInvalidID = errors.New("invalid id")
