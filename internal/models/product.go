package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product prices are stored in minor units (kobo) to keep all money
// arithmetic exact.
type Product struct {
	ID            uuid.UUID `json:"id"`
	SellerID      uuid.UUID `json:"seller_id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Category      *Category `json:"category,omitempty"`
}

type CreateProductRequest struct {
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	Name          string    `json:"name" validate:"required,min=3,max=200"`
	Description   string    `json:"description" validate:"omitempty,max=5000"`
	Price         int64     `json:"price" validate:"required,gt=0"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0,lte=100000"`
	ImageURL      string    `json:"image_url" validate:"omitempty,max=500"`
}

type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price         *int64     `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int       `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	ImageURL      *string    `json:"image_url,omitempty" validate:"omitempty,max=500"`
	IsActive      *bool      `json:"is_active,omitempty"`
}
