package service_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	service "github.com/uandc/arena-market/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest() (*mockCartRepo, *mockProductRepo, *service.CartService) {
	cartRepo := new(mockCartRepo)
	productRepo := new(mockProductRepo)

	return cartRepo, productRepo, service.NewCartService(cartRepo, productRepo)
}

func activeProduct(price int64) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		SellerID:      uuid.New(),
		Name:          "Gaming Mouse",
		Price:         price,
		StockQuantity: 10,
		IsActive:      true,
	}
}

func TestCartServiceGetCart(t *testing.T) {
	t.Run("Success - Derives Subtotal And Count", func(t *testing.T) {
		// Arrange
		cartRepo, _, svc := setupCartServiceTest()
		userID := uuid.New()

		items := []models.CartItem{
			{ID: uuid.New(), Quantity: 2, Product: activeProduct(5000)},
			{ID: uuid.New(), Quantity: 1, Product: activeProduct(1500)},
		}

		cartRepo.On("ListByUser", mock.Anything, userID).Return(items, nil).Once()

		// Act
		cart, err := svc.GetCart(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(11500), cart.Subtotal)
		assert.Equal(t, 3, cart.Count)
		assert.Len(t, cart.Items, 2)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Empty Cart Is Valid", func(t *testing.T) {
		// Arrange
		cartRepo, _, svc := setupCartServiceTest()
		userID := uuid.New()

		cartRepo.On("ListByUser", mock.Anything, userID).Return([]models.CartItem(nil), nil).Once()

		// Act
		cart, err := svc.GetCart(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.Subtotal)
		assert.Zero(t, cart.Count)
	})
}

func TestCartServiceAddItem(t *testing.T) {
	t.Run("Success - Defaults Quantity To One", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, svc := setupCartServiceTest()
		userID := uuid.New()
		product := activeProduct(5000)

		productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil).Once()
		cartRepo.On("AddOrIncrement", mock.Anything, userID, product.ID, 1).Return(nil).Once()
		cartRepo.On("ListByUser", mock.Anything, userID).
			Return([]models.CartItem{{ID: uuid.New(), Quantity: 1, Product: product}}, nil).Once()

		// Act
		cart, err := svc.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(5000), cart.Subtotal)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, svc := setupCartServiceTest()
		productID := uuid.New()

		productRepo.On("GetByID", mock.Anything, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := svc.AddItem(t.Context(), uuid.New(), &models.AddItemRequest{ProductID: productID, Quantity: 1})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		cartRepo.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Inactive Product", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, svc := setupCartServiceTest()
		product := activeProduct(5000)
		product.IsActive = false

		productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil).Once()

		// Act
		_, err := svc.AddItem(t.Context(), uuid.New(), &models.AddItemRequest{ProductID: product.ID, Quantity: 1})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		cartRepo.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartServiceUpdateQuantity(t *testing.T) {
	t.Run("Success - Quantity Below One Is A Silent No-Op", func(t *testing.T) {
		// Arrange
		cartRepo, _, svc := setupCartServiceTest()
		userID := uuid.New()

		cartRepo.On("ListByUser", mock.Anything, userID).Return([]models.CartItem{}, nil).Once()

		// Act
		cart, err := svc.UpdateQuantity(t.Context(), userID, uuid.New(), &models.UpdateQuantityRequest{Quantity: 0})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, cart)
		cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		// Arrange
		cartRepo, _, svc := setupCartServiceTest()
		userID := uuid.New()
		lineID := uuid.New()

		cartRepo.On("UpdateQuantity", mock.Anything, userID, lineID, 4).Return(sql.ErrNoRows).Once()

		// Act
		_, err := svc.UpdateQuantity(t.Context(), userID, lineID, &models.UpdateQuantityRequest{Quantity: 4})

		// Assert
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCartServiceClearCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartRepo, _, svc := setupCartServiceTest()
		userID := uuid.New()

		cartRepo.On("DeleteByUser", mock.Anything, userID).Return(nil).Once()

		// Act
		err := svc.ClearCart(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})
}
