package handlers

import (
	"fmt"

	"github.com/rogerio-castellano/catalog-api/internal/http/validation"
)

// ProductIDRule rejects malformed product ids in the path.
func ProductIDRule() validation.Rule {
	return validation.IDParam("id", func(id string) bool {
		return productRepo.ValidID(id)
	})
}

// CreateProductRule validates a creation body.
func CreateProductRule() validation.Rule {
	return validation.JSONBody(func() any { return &ProductRequest{} }, func(dst any) []validation.FieldError {
		req := dst.(*ProductRequest)
		var errs []validation.FieldError
		if req.Category != "" {
			errs = append(errs, categoryErrors(req.Category)...)
		}
		if req.Price != nil {
			errs = append(errs, discountErrors(req.PriceAfterDiscount, *req.Price)...)
		}
		return errs
	})
}

// UpdateProductRule validates a partial update body.
func UpdateProductRule() validation.Rule {
	return validation.JSONBody(func() any { return &ProductUpdateRequest{} }, func(dst any) []validation.FieldError {
		req := dst.(*ProductUpdateRequest)
		var errs []validation.FieldError
		if req.Category != nil && *req.Category != "" {
			errs = append(errs, categoryErrors(*req.Category)...)
		}
		if req.Price != nil {
			errs = append(errs, discountErrors(req.PriceAfterDiscount, *req.Price)...)
		}
		return errs
	})
}

// LoginRule requires both credentials.
func LoginRule() validation.Rule {
	return validation.JSONBody(func() any { return &UserLogin{} })
}

func categoryErrors(category string) []validation.FieldError {
	if productRepo.ValidID(category) {
		return nil
	}
	return []validation.FieldError{{
		Type:     "field",
		Value:    category,
		Msg:      "Invalid category id format",
		Path:     "category",
		Location: validation.LocationBody,
	}}
}

func discountErrors(discount *float64, price float64) []validation.FieldError {
	if discount == nil || *discount < price {
		return nil
	}
	return []validation.FieldError{{
		Type:     "field",
		Value:    *discount,
		Msg:      fmt.Sprintf("price_after_discount must be lower than price %g", price),
		Path:     "price_after_discount",
		Location: validation.LocationBody,
	}}
}
