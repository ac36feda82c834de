package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	repository "github.com/uandc/arena-market/internal/repositories"
)

type ReviewService struct {
	repo      repository.ReviewRepository
	sanitizer *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID) (*models.ReviewSummary, error) {

	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load reviews").WithError(err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	summary := &models.ReviewSummary{
		Reviews: reviews,
		Count:   len(reviews),
	}

	if len(reviews) > 0 {

		var sum int

		for _, review := range reviews {
			sum += review.Rating
		}

		summary.AverageRating = float64(sum) / float64(len(reviews))
	}

	return summary, nil
}

// Create stores a verified-purchase review. Only buyers with a delivered
// order containing the product may review it, once each.
func (s *ReviewService) Create(ctx context.Context, userID, productID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {

	purchased, err := s.repo.HasDeliveredPurchase(ctx, userID, productID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to verify purchase").WithError(err)
	}

	if !purchased {
		return nil, apperrors.ForbiddenError("You must have purchased this item to review it")
	}

	reviewed, err := s.repo.HasReview(ctx, userID, productID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to check existing review").WithError(err)
	}

	if reviewed {
		return nil, apperrors.DuplicateEntryError("You have already reviewed this item")
	}

	review := &models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   s.sanitizer.Sanitize(req.Comment),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, apperrors.GatewayError(err, "Failed to create review")
	}

	return review, nil
}
