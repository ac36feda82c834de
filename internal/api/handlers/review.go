package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils"
	"github.com/uandc/arena-market/internal/utils/response"
)

type ReviewService interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) (*models.ReviewSummary, error)
	Create(ctx context.Context, userID, productID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: service,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) ListForProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		summary, err := h.reviewService.ListForProduct(r.Context(), productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *ReviewHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.CreateReviewRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.Create(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, review)
	}
}
