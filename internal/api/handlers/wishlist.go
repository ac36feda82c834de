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

type WishlistService interface {
	Toggle(ctx context.Context, userID uuid.UUID, req *models.ToggleWishlistRequest) (*models.ToggleWishlistResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type WishlistHandler struct {
	wishlistService WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(service WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: service,
		validator:       validator.New(),
	}
}

func (h *WishlistHandler) Toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req models.ToggleWishlistRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.wishlistService.Toggle(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *WishlistHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		ids, err := h.wishlistService.List(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]any{"product_ids": ids})
	}
}

func (h *WishlistHandler) Contains() http.HandlerFunc {
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

		inWishlist, err := h.wishlistService.Contains(r.Context(), claims.UserID, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.ToggleWishlistResponse{ProductID: productID, InWishlist: inWishlist})
	}
}
