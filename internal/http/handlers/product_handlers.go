package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"
	"github.com/rogerio-castellano/catalog-api/internal/apperr"
	"github.com/rogerio-castellano/catalog-api/internal/models"
	repo "github.com/rogerio-castellano/catalog-api/internal/repo"
)

// GetProductsHandler godoc
// @Summary List products
// @Description Filters with field=value or field[gte|gt|lte|lt]=value, sorts with sort=price,-sold, selects fields with fields=title,price and pages with page/limit.
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(50)
// @Param sort query string false "Comma separated sort keys, '-' for descending"
// @Param fields query string false "Comma separated fields to return"
// @Success 200 {object} ListResponse
// @Failure 400 {object} apperr.Error
// @Failure 500 {object} apperr.Error
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) error {
	q, err := composer.Compose(r.URL.Query())
	if err != nil {
		return err
	}

	products, err := productRepo.Find(r.Context(), q)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	var data any = products
	if len(q.Fields) > 0 {
		if data, err = selectFields(products, q.Fields); err != nil {
			return err
		}
	}

	return writeJSON(w, http.StatusOK, ListResponse{
		Results: len(products),
		Page:    q.Pagination.Page,
		Data:    data,
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} validation.Response
// @Failure 404 {object} apperr.Error
// @Failure 500 {object} apperr.Error
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	product, err := productRepo.FindByID(r.Context(), id)
	if err != nil {
		return productError(id, err)
	}
	return writeJSON(w, http.StatusOK, DataResponse{Data: product})
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description The slug is derived from the title.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} DataResponse
// @Failure 400 {object} validation.Response
// @Failure 401 {object} apperr.Error
// @Failure 500 {object} apperr.Error
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) error {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}

	product := req.toProduct()
	product.Slug = slug.Make(product.Title)

	created, err := productRepo.Create(r.Context(), product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return writeJSON(w, http.StatusCreated, DataResponse{Data: created})
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Only the fields present in the body change. A new title also renews the slug.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductUpdateRequest true "Fields to change"
// @Success 200 {object} DataResponse
// @Failure 400 {object} validation.Response
// @Failure 401 {object} apperr.Error
// @Failure 404 {object} apperr.Error
// @Failure 500 {object} apperr.Error
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}

	patch := req.toPatch()
	if patch.Title != nil {
		s := slug.Make(*patch.Title)
		patch.Slug = &s
	}

	if err := checkStoredDiscount(r.Context(), id, patch); err != nil {
		return err
	}

	updated, err := productRepo.Update(r.Context(), id, patch)
	if err != nil {
		return productError(id, err)
	}
	return writeJSON(w, http.StatusOK, DataResponse{Data: updated})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 400 {object} validation.Response
// @Failure 401 {object} apperr.Error
// @Failure 404 {object} apperr.Error
// @Failure 500 {object} apperr.Error
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	if err := productRepo.Delete(r.Context(), id); err != nil {
		return productError(id, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// checkStoredDiscount compares a patch that sets only one of price and
// price_after_discount against the stored value of the other.
func checkStoredDiscount(ctx context.Context, id string, patch models.ProductPatch) error {
	if (patch.Price == nil) == (patch.PriceAfterDiscount == nil) {
		return nil
	}
	current, err := productRepo.FindByID(ctx, id)
	if err != nil {
		return productError(id, err)
	}

	price, discount := current.Price, current.PriceAfterDiscount
	if patch.Price != nil {
		price = *patch.Price
	}
	if patch.PriceAfterDiscount != nil {
		discount = patch.PriceAfterDiscount
	}
	if discount != nil && *discount >= price {
		return apperr.BadRequest("price_after_discount must be lower than price %g", price)
	}
	return nil
}

func productError(id string, err error) error {
	if errors.Is(err, repo.ErrProductNotFound) {
		return apperr.NotFound(fmt.Sprintf("no product for this id %s", id))
	}
	return err
}

// selectFields keeps only the requested keys of each product.
func selectFields(products []models.Product, fields []string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(products))
	for _, p := range products {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		var full map[string]any
		if err := json.Unmarshal(raw, &full); err != nil {
			return nil, err
		}

		picked := make(map[string]any, len(fields))
		for _, f := range fields {
			if v, ok := full[f]; ok {
				picked[f] = v
			}
		}
		out = append(out, picked)
	}
	return out, nil
}
