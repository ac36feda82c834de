package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	repository "github.com/uandc/arena-market/internal/repositories"
)

type CartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{repo: repo, productRepo: productRepo}
}

// GetCart returns the user's lines with Subtotal and Count derived from the
// current product prices. An empty cart is a valid cart, not an error.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load cart").WithError(err)
	}

	cart := &models.Cart{Items: items}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	for _, item := range items {
		cart.Subtotal += item.Product.Price * int64(item.Quantity)
		cart.Count += item.Quantity
	}

	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load product").WithError(err)
	}

	if !product.IsActive {
		return nil, apperrors.BadRequestError("Product is no longer available")
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if err := s.repo.AddOrIncrement(ctx, userID, req.ProductID, quantity); err != nil {
		return nil, apperrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets a line's quantity. Quantities below one leave the line
// untouched and return the cart as-is.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	if req.Quantity < 1 {
		return s.GetCart(ctx, userID)
	}

	if err := s.repo.UpdateQuantity(ctx, userID, lineID, req.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Cart item not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) (*models.Cart, error) {

	if err := s.repo.DeleteLine(ctx, userID, lineID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Cart item not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {

	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return apperrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
