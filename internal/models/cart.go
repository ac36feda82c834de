package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a user's cart. At most one line exists per
// (user, product) pair; adding an existing product increments the quantity.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is the derived view returned to clients. Subtotal and Count are
// recomputed from the lines on every read, never stored.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Count    int        `json:"count"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}
