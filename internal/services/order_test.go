package service_test

import (
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/pricing"
	repository "github.com/uandc/arena-market/internal/repositories"
	service "github.com/uandc/arena-market/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderServiceTest() (*mockOrderRepo, *mockCartRepo, *mockUserRepo, *service.OrderService) {
	orderRepo := new(mockOrderRepo)
	cartRepo := new(mockCartRepo)
	userRepo := new(mockUserRepo)

	svc := service.NewOrderService(orderRepo, cartRepo, userRepo, pricing.DefaultConfig())

	return orderRepo, cartRepo, userRepo, svc
}

func cartWith(lines ...models.CartItem) []models.CartItem {
	return lines
}

func cartLine(price int64, quantity int, sellerID uuid.UUID) models.CartItem {
	productID := uuid.New()

	return models.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Product: &models.Product{
			ID:            productID,
			SellerID:      sellerID,
			Name:          "Item",
			Price:         price,
			StockQuantity: 100,
			IsActive:      true,
		},
	}
}

func TestOrderServiceCheckout(t *testing.T) {
	t.Run("Success - Pickup Order Totals And Commission Split", func(t *testing.T) {
		// Arrange
		orderRepo, cartRepo, _, svc := setupOrderServiceTest()
		buyerID := uuid.New()
		sellerID := uuid.New()

		items := cartWith(cartLine(5000, 2, sellerID), cartLine(1500, 1, sellerID))

		cartRepo.On("ListByUser", mock.Anything, buyerID).Return(items, nil).Once()
		orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order"), (*models.DeliveryAddress)(nil)).
			Return(nil).Once()
		cartRepo.On("DeleteByUser", mock.Anything, buyerID).Return(nil).Once()

		// Act
		order, err := svc.Checkout(t.Context(), buyerID, &models.CheckoutRequest{DeliveryMethod: models.DeliveryPickup})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(11500), order.Subtotal)
		assert.Equal(t, int64(0), order.DeliveryFee)
		assert.Equal(t, int64(1150), order.CommissionAmount)
		assert.Equal(t, int64(11500), order.TotalAmount)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
		assert.Regexp(t, `^PAY-\d+$`, order.PaymentReference)

		require.Len(t, order.Items, 2)

		var commission, payout int64

		for _, item := range order.Items {
			assert.Equal(t, sellerID, item.SellerID)
			assert.Equal(t, item.Subtotal, item.CommissionAmount+item.SellerPayout)
			commission += item.CommissionAmount
			payout += item.SellerPayout
		}

		assert.Equal(t, order.Subtotal, commission+payout)

		orderRepo.AssertExpectations(t)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Home Delivery Adds Fee And Saves Address", func(t *testing.T) {
		// Arrange
		orderRepo, cartRepo, _, svc := setupOrderServiceTest()
		buyerID := uuid.New()

		items := cartWith(cartLine(5000, 2, uuid.New()), cartLine(1500, 1, uuid.New()))

		cartRepo.On("ListByUser", mock.Anything, buyerID).Return(items, nil).Once()
		orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("*models.DeliveryAddress")).
			Return(nil).Once()
		cartRepo.On("DeleteByUser", mock.Anything, buyerID).Return(nil).Once()

		req := &models.CheckoutRequest{
			DeliveryMethod: models.DeliveryHomeDelivery,
			Address: &models.DeliveryAddressRequest{
				FullName:     "Ada Obi",
				Phone:        "08030000000",
				AddressLine1: "12 Market Road",
				City:         "Lagos",
				State:        "Lagos",
			},
		}

		// Act
		order, err := svc.Checkout(t.Context(), buyerID, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(2000), order.DeliveryFee)
		assert.Equal(t, int64(13500), order.TotalAmount)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		orderRepo, cartRepo, _, svc := setupOrderServiceTest()
		buyerID := uuid.New()

		cartRepo.On("ListByUser", mock.Anything, buyerID).Return([]models.CartItem{}, nil).Once()

		// Act
		_, err := svc.Checkout(t.Context(), buyerID, &models.CheckoutRequest{DeliveryMethod: models.DeliveryPickup})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Home Delivery Without Address", func(t *testing.T) {
		// Arrange
		orderRepo, cartRepo, _, svc := setupOrderServiceTest()
		buyerID := uuid.New()

		cartRepo.On("ListByUser", mock.Anything, buyerID).
			Return(cartWith(cartLine(5000, 1, uuid.New())), nil).Once()

		// Act
		_, err := svc.Checkout(t.Context(), buyerID, &models.CheckoutRequest{DeliveryMethod: models.DeliveryHomeDelivery})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Insufficient Stock Leaves Cart Intact", func(t *testing.T) {
		// Arrange
		orderRepo, cartRepo, _, svc := setupOrderServiceTest()
		buyerID := uuid.New()

		cartRepo.On("ListByUser", mock.Anything, buyerID).
			Return(cartWith(cartLine(5000, 1, uuid.New())), nil).Once()
		orderRepo.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
			Return(repository.ErrInsufficientStock).Once()

		// Act
		_, err := svc.Checkout(t.Context(), buyerID, &models.CheckoutRequest{DeliveryMethod: models.DeliveryPickup})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		cartRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Stale Cart Line Exceeds Stock", func(t *testing.T) {
		// Arrange
		orderRepo, cartRepo, _, svc := setupOrderServiceTest()
		buyerID := uuid.New()

		line := cartLine(5000, 5, uuid.New())
		line.Product.StockQuantity = 2

		cartRepo.On("ListByUser", mock.Anything, buyerID).Return(cartWith(line), nil).Once()

		// Act
		_, err := svc.Checkout(t.Context(), buyerID, &models.CheckoutRequest{DeliveryMethod: models.DeliveryPickup})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderServiceGetOrder(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()
	orderID := uuid.New()

	order := &models.Order{
		ID:      orderID,
		BuyerID: buyerID,
		Items:   []models.OrderItem{{SellerID: sellerID}},
	}

	t.Run("Success - Buyer Sees Own Order", func(t *testing.T) {
		// Arrange
		orderRepo, _, _, svc := setupOrderServiceTest()
		orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		got, err := svc.GetOrder(t.Context(), orderID, &models.Claims{UserID: buyerID, Role: models.RoleBuyer})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, orderID, got.ID)
	})

	t.Run("Success - Seller With A Line Sees Order", func(t *testing.T) {
		// Arrange
		orderRepo, _, _, svc := setupOrderServiceTest()
		orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		_, err := svc.GetOrder(t.Context(), orderID, &models.Claims{UserID: sellerID, Role: models.RoleSeller})

		// Assert
		require.NoError(t, err)
	})

	t.Run("Failure - Stranger Is Forbidden", func(t *testing.T) {
		// Arrange
		orderRepo, _, _, svc := setupOrderServiceTest()
		orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		_, err := svc.GetOrder(t.Context(), orderID, &models.Claims{UserID: uuid.New(), Role: models.RoleBuyer})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
	})
}
