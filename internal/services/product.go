package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/api/middleware"
	"github.com/uandc/arena-market/internal/cache"
	"github.com/uandc/arena-market/internal/catalog"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	repository "github.com/uandc/arena-market/internal/repositories"
)

const searchLimit = 50

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, c cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: c}
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cache lookup failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {

	logger := middleware.LoggerFromContext(ctx)

	var cached []models.Category

	found, err := s.cache.Get(ctx, cache.CategoriesKey, &cached)
	if err != nil {
		logger.Warn("Cache lookup failed", slog.String("key", cache.CategoriesKey), slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load categories").WithError(err)
	}

	if categories == nil {
		categories = []models.Category{}
	}

	if err := s.cache.Set(ctx, cache.CategoriesKey, categories, 0); err != nil {
		logger.Warn("Cache write failed", slog.String("key", cache.CategoriesKey), slog.Any("error", err))
	}

	return categories, nil
}

// BrowseCategory lists a category's buyable products with the requested
// filter and sort applied.
func (s *ProductService) BrowseCategory(ctx context.Context, categoryID uuid.UUID, filter catalog.Filter) ([]models.Product, error) {

	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load category").WithError(err)
	}

	products, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load products").WithError(err)
	}

	filtered := catalog.Apply(products, filter)
	if filtered == nil {
		filtered = []models.Product{}
	}

	return filtered, nil
}

func (s *ProductService) List(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error) {

	products, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load products").WithError(err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return &models.PaginatedResponse{Data: products, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {

	if term == "" {
		return []models.Product{}, nil
	}

	products, err := s.repo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to search products").WithError(err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, sellerID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:            uuid.New(),
		SellerID:      sellerID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.GatewayError(err, "Failed to create product")
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load product").WithError(err)
	}

	if product.SellerID != sellerID {
		return nil, apperrors.ForbiddenError("You do not own this product")
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.GatewayError(err, "Failed to update product")
	}

	// The cached copy is now stale.
	key := cache.Key(cache.ProductKeyPrefix, productID.String())
	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}
