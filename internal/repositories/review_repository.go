package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils"
)

type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	HasDeliveredPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	HasReview(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	var reviews []models.Review

	for rows.Next() {
		var review models.Review

		err := rows.Scan(&review.ID, &review.ProductID, &review.UserID,
			&review.Rating, &review.Comment, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		review.ID, review.ProductID, review.UserID, review.Rating, review.Comment).
		Scan(&review.CreatedAt)
}

// HasDeliveredPurchase reports whether the user has a delivered order that
// contains this product. Only such buyers may review it.
func (r *reviewRepository) HasDeliveredPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.buyer_id = $1 AND oi.product_id = $2 AND o.status = 'delivered'
		)
	`

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}

	return exists, nil
}

func (r *reviewRepository) HasReview(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2)`

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}

	return exists, nil
}
