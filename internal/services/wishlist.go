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

type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
}

func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo}
}

// Toggle flips the product's wishlist membership and reports the state after
// the flip.
func (s *WishlistService) Toggle(ctx context.Context, userID uuid.UUID, req *models.ToggleWishlistRequest) (*models.ToggleWishlistResponse, error) {

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load product").WithError(err)
	}

	exists, err := s.repo.Exists(ctx, userID, req.ProductID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to check wishlist").WithError(err)
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, req.ProductID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.DatabaseError("Failed to remove from wishlist").WithError(err)
		}

		return &models.ToggleWishlistResponse{ProductID: req.ProductID, InWishlist: false}, nil
	}

	if err := s.repo.Add(ctx, userID, req.ProductID); err != nil {
		return nil, apperrors.GatewayError(err, "Failed to add to wishlist")
	}

	return &models.ToggleWishlistResponse{ProductID: req.ProductID, InWishlist: true}, nil
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {

	ids, err := s.repo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load wishlist").WithError(err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}

func (s *WishlistService) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {

	exists, err := s.repo.Exists(ctx, userID, productID)
	if err != nil {
		return false, apperrors.DatabaseError("Failed to check wishlist").WithError(err)
	}

	return exists, nil
}
