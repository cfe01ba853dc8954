package handlers

import "github.com/rogerio-castellano/catalog-api/internal/models"

// ProductRequest is the body of a product creation.
type ProductRequest struct {
	Title              string   `json:"title" validate:"required,min=3,max=100" example:"Red Shoes"`
	Description        string   `json:"description" validate:"required,min=20,max=2000"`
	Quantity           *int     `json:"quantity" validate:"required,gte=0"`
	Sold               int      `json:"sold" validate:"gte=0"`
	Price              *float64 `json:"price" validate:"required,gt=0,lte=200000" example:"59.9"`
	PriceAfterDiscount *float64 `json:"price_after_discount" validate:"omitempty,gt=0"`
	Colors             []string `json:"colors" validate:"omitempty,dive,required"`
	ImageCover         string   `json:"image_cover" validate:"required"`
	Images             []string `json:"images" validate:"omitempty,dive,required"`
	Category           string   `json:"category" validate:"required"`
	RatingsAverage     *float64 `json:"ratings_average" validate:"omitempty,gte=1,lte=5"`
	RatingsQuantity    int      `json:"ratings_quantity" validate:"gte=0"`
}

// ProductUpdateRequest is the body of a partial product update. Absent
// fields are left untouched.
type ProductUpdateRequest struct {
	Title              *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description        *string  `json:"description" validate:"omitempty,min=20,max=2000"`
	Quantity           *int     `json:"quantity" validate:"omitempty,gte=0"`
	Sold               *int     `json:"sold" validate:"omitempty,gte=0"`
	Price              *float64 `json:"price" validate:"omitempty,gt=0,lte=200000"`
	PriceAfterDiscount *float64 `json:"price_after_discount" validate:"omitempty,gt=0"`
	Colors             []string `json:"colors" validate:"omitempty,dive,required"`
	ImageCover         *string  `json:"image_cover" validate:"omitempty,min=1"`
	Images             []string `json:"images" validate:"omitempty,dive,required"`
	Category           *string  `json:"category"`
	RatingsAverage     *float64 `json:"ratings_average" validate:"omitempty,gte=1,lte=5"`
	RatingsQuantity    *int     `json:"ratings_quantity" validate:"omitempty,gte=0"`
}

// ListResponse is the envelope of a product listing.
type ListResponse struct {
	Results int `json:"results"`
	Page    int `json:"page"`
	Data    any `json:"data" swaggertype:"array,object"`
}

type DataResponse struct {
	Data models.Product `json:"data"`
}

type UserLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type HealthResult struct {
	Status string `json:"status"`
}

func (req ProductRequest) toProduct() models.Product {
	p := models.Product{
		Title:              req.Title,
		Description:        req.Description,
		Sold:               req.Sold,
		PriceAfterDiscount: req.PriceAfterDiscount,
		Colors:             req.Colors,
		ImageCover:         req.ImageCover,
		Images:             req.Images,
		CategoryID:         req.Category,
		RatingsAverage:     req.RatingsAverage,
		RatingsQuantity:    req.RatingsQuantity,
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

func (req ProductUpdateRequest) toPatch() models.ProductPatch {
	patch := models.ProductPatch{
		Title:              req.Title,
		Description:        req.Description,
		Quantity:           req.Quantity,
		Sold:               req.Sold,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		ImageCover:         req.ImageCover,
		CategoryID:         req.Category,
		RatingsAverage:     req.RatingsAverage,
		RatingsQuantity:    req.RatingsQuantity,
	}
	if req.Colors != nil {
		patch.Colors = &req.Colors
	}
	if req.Images != nil {
		patch.Images = &req.Images
	}
	return patch
}
