package models

import "time"

// Product represents a product entity in the catalog.
type Product struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Slug               string       `json:"slug"`
	Description        string       `json:"description"`
	Quantity           int          `json:"quantity"`
	Sold               int          `json:"sold"`
	Price              float64      `json:"price"`
	PriceAfterDiscount *float64     `json:"price_after_discount,omitempty"`
	Colors             []string     `json:"colors"`
	ImageCover         string       `json:"image_cover"`
	Images             []string     `json:"images"`
	CategoryID         string       `json:"-"`
	Category           *CategoryRef `json:"category"`
	RatingsAverage     *float64     `json:"ratings_average,omitempty"`
	RatingsQuantity    int          `json:"ratings_quantity"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// CategoryRef is the expanded view of a product's category. Only the name is
// surfaced; the category identifier is never exposed through a product.
type CategoryRef struct {
	Name string `json:"name"`
}

// Category groups products.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductPatch holds the fields of a partial update. Nil fields are left
// untouched.
type ProductPatch struct {
	Title              *string
	Slug               *string
	Description        *string
	Quantity           *int
	Sold               *int
	Price              *float64
	PriceAfterDiscount *float64
	Colors             *[]string
	ImageCover         *string
	Images             *[]string
	CategoryID         *string
	RatingsAverage     *float64
	RatingsQuantity    *int
}

// Apply copies the set fields of the patch onto p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Sold != nil {
		p.Sold = *patch.Sold
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.PriceAfterDiscount != nil {
		v := *patch.PriceAfterDiscount
		p.PriceAfterDiscount = &v
	}
	if patch.Colors != nil {
		p.Colors = append([]string(nil), (*patch.Colors)...)
	}
	if patch.ImageCover != nil {
		p.ImageCover = *patch.ImageCover
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.RatingsAverage != nil {
		v := *patch.RatingsAverage
		p.RatingsAverage = &v
	}
	if patch.RatingsQuantity != nil {
		p.RatingsQuantity = *patch.RatingsQuantity
	}
}
