package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/api/middleware"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/metrics"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils"
	"github.com/uandc/arena-market/internal/utils/response"
)

type OrderService interface {
	Checkout(ctx context.Context, buyerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID, claims *models.Claims) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error)
	UpdateStatus(ctx context.Context, orderID, sellerID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type OrderHandler struct {
	orderService OrderService
	validator    *validator.Validate
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: service,
		validator:    validator.New(),
	}
}

func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req models.CheckoutRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if req.Address != nil {
			if err := h.validator.Struct(req.Address); err != nil {
				response.Error(w, apperrors.ValidationError("Invalid delivery address"))

				return
			}
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		metrics.OrderPlaced()

		middleware.LoggerFromContext(r.Context()).Info("Order placed",
			slog.String("orderId", order.ID.String()),
			slog.Int64("total", order.TotalAmount))

		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		order, err := h.orderService.GetOrder(r.Context(), orderID, claims)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		page, pageSize := parsePagination(r)

		result, err := h.orderService.ListByBuyer(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// ListSellerOrders returns the orders containing the caller's lines.
func (h *OrderHandler) ListSellerOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		page, pageSize := parsePagination(r)

		result, err := h.orderService.ListBySeller(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), orderID, claims.UserID, req.Status)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
