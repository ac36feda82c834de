package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry is existence-only: one row per (user, product) pair.
type WishlistEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ToggleWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type ToggleWishlistResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	InWishlist bool      `json:"in_wishlist"`
}
