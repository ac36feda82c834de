package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uandc/arena-market/internal/models"
)

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)

	if items, ok := args.Get(0).([]models.CartItem); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepo) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *mockCartRepo) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	return m.Called(ctx, userID, lineID, quantity).Error(0)
}

func (m *mockCartRepo) DeleteLine(ctx context.Context, userID, lineID uuid.UUID) error {
	return m.Called(ctx, userID, lineID).Error(0)
}

func (m *mockCartRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	args := m.Called(ctx, categoryID)

	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, page, pageSize int) ([]models.Product, int, error) {
	args := m.Called(ctx, page, pageSize)

	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *mockProductRepo) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	args := m.Called(ctx, term, limit)

	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	if categories, ok := args.Get(0).([]models.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)

	if category, ok := args.Get(0).(*models.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)

	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockWishlistRepo) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)

	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepo) Add(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockWishlistRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order *models.Order, address *models.DeliveryAddress) error {
	return m.Called(ctx, order, address).Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID)

	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepo) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	args := m.Called(ctx, buyerID, page, pageSize)

	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	args := m.Called(ctx, sellerID, page, pageSize)

	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID, sellerID uuid.UUID, status models.OrderStatus) error {
	return m.Called(ctx, orderID, sellerID, status).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) GetRole(ctx context.Context, userID uuid.UUID) (models.Role, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(models.Role), args.Error(1)
}

func (m *mockUserRepo) AssignRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, productID)

	if reviews, ok := args.Get(0).([]models.Review); ok {
		return reviews, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) HasDeliveredPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)

	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) HasReview(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)

	return args.Bool(0), args.Error(1)
}

type mockRateLimitRepo struct {
	mock.Mock
}

func (m *mockRateLimitRepo) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
