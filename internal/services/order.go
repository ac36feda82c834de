package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/api/middleware"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/events"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/pricing"
	repository "github.com/uandc/arena-market/internal/repositories"
)

// OrderNotifier delivers the buyer-facing confirmation after checkout.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, email string, order *models.Order) error
}

// EventPublisher pushes order events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type OrderService struct {
	repo      repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	pricing   pricing.Config
	notifier  OrderNotifier
	publisher EventPublisher
}

func NewOrderService(repo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, cfg pricing.Config) *OrderService {
	return &OrderService{repo: repo, cartRepo: cartRepo, userRepo: userRepo, pricing: cfg}
}

// WithNotifier attaches the post-checkout confirmation sender.
func (s *OrderService) WithNotifier(n OrderNotifier) *OrderService {
	s.notifier = n

	return s
}

// WithPublisher attaches the order event publisher.
func (s *OrderService) WithPublisher(p EventPublisher) *OrderService {
	s.publisher = p

	return s
}

// Checkout turns the user's cart into an order. The address, order header,
// lines, and stock decrements commit in one transaction; the cart is cleared
// only after the commit, so a failed checkout leaves it intact.
func (s *OrderService) Checkout(ctx context.Context, buyerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	items, err := s.cartRepo.ListByUser(ctx, buyerID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(items) == 0 {
		return nil, apperrors.BadRequestError("Cart is empty")
	}

	if req.DeliveryMethod == models.DeliveryHomeDelivery && req.Address == nil {
		return nil, apperrors.ValidationError("Delivery address is required for home delivery")
	}

	lines := make([]pricing.Line, 0, len(items))

	for _, item := range items {

		if !item.Product.IsActive {
			return nil, apperrors.BadRequestError(fmt.Sprintf("%s is no longer available", item.Product.Name))
		}

		if item.Product.StockQuantity < item.Quantity {
			return nil, apperrors.BadRequestError(fmt.Sprintf("Not enough stock for %s", item.Product.Name))
		}

		lines = append(lines, pricing.Line{UnitPrice: item.Product.Price, Quantity: item.Quantity})
	}

	quote := s.pricing.Quote(lines, req.DeliveryMethod)

	order := &models.Order{
		ID:               uuid.New(),
		BuyerID:          buyerID,
		Subtotal:         quote.Subtotal,
		DeliveryFee:      quote.DeliveryFee,
		CommissionAmount: quote.CommissionAmount,
		TotalAmount:      quote.Total,
		DeliveryMethod:   req.DeliveryMethod,
		Notes:            req.Notes,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusCompleted,
		PaymentReference: fmt.Sprintf("PAY-%d", time.Now().UnixMilli()),
	}

	for _, item := range items {

		split := s.pricing.LineSplit(item.Product.Price, item.Quantity)

		order.Items = append(order.Items, models.OrderItem{
			ID:               uuid.New(),
			OrderID:          order.ID,
			ProductID:        item.ProductID,
			SellerID:         item.Product.SellerID,
			Quantity:         item.Quantity,
			UnitPrice:        item.Product.Price,
			Subtotal:         split.Subtotal,
			CommissionRateBP: s.pricing.CommissionRateBP,
			CommissionAmount: split.CommissionAmount,
			SellerPayout:     split.SellerPayout,
			ProductName:      item.Product.Name,
		})
	}

	var address *models.DeliveryAddress

	if req.DeliveryMethod == models.DeliveryHomeDelivery {
		address = &models.DeliveryAddress{
			ID:           uuid.New(),
			UserID:       buyerID,
			FullName:     req.Address.FullName,
			Phone:        req.Address.Phone,
			AddressLine1: req.Address.AddressLine1,
			AddressLine2: req.Address.AddressLine2,
			City:         req.Address.City,
			State:        req.Address.State,
		}
	}

	if err := s.repo.CreateOrder(ctx, order, address); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperrors.BadRequestError("One of the items just sold out").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to create order").WithError(err)
	}

	// Post-commit work is best effort. The order stands even if cleanup or
	// notifications fail.
	if err := s.cartRepo.DeleteByUser(ctx, buyerID); err != nil {
		logger.Error("Failed to clear cart after checkout", slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	if s.publisher != nil {
		event := events.OrderCreated{
			OrderID:        order.ID,
			BuyerID:        order.BuyerID,
			TotalAmount:    order.TotalAmount,
			DeliveryMethod: string(order.DeliveryMethod),
			ItemCount:      len(order.Items),
			CreatedAt:      time.Now(),
		}

		if err := s.publisher.Publish(ctx, order.ID.String(), event); err != nil {
			logger.Error("Failed to publish order event", slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	}

	if s.notifier != nil {
		if buyer, err := s.userRepo.GetUserByID(ctx, buyerID); err == nil {
			if err := s.notifier.SendOrderConfirmation(ctx, buyer.Email, order); err != nil {
				logger.Error("Failed to send order confirmation", slog.String("orderId", order.ID.String()), slog.Any("error", err))
			}
		}
	}

	return order, nil
}

// GetOrder returns the order when the caller is its buyer or one of its
// sellers.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, claims *models.Claims) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load order").WithError(err)
	}

	if order.BuyerID == claims.UserID || claims.Role == models.RoleAdmin {
		return order, nil
	}

	for _, item := range order.Items {
		if item.SellerID == claims.UserID {
			return order, nil
		}
	}

	return nil, apperrors.ForbiddenError("You do not have access to this order")
}

func (s *OrderService) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error) {

	orders, total, err := s.repo.ListByBuyer(ctx, buyerID, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *OrderService) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error) {

	orders, total, err := s.repo.ListBySeller(ctx, sellerID, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateStatus moves an order to a new status on behalf of a seller. The
// repository enforces that the seller owns at least one line.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, sellerID uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if err := s.repo.UpdateStatus(ctx, orderID, sellerID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load order").WithError(err)
	}

	return order, nil
}
