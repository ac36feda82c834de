package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/catalog"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils"
	"github.com/uandc/arena-market/internal/utils/response"
)

type ProductService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	BrowseCategory(ctx context.Context, categoryID uuid.UUID, filter catalog.Filter) ([]models.Product, error)
	List(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
	CreateProduct(ctx context.Context, sellerID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
}

func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{
		productService: service,
		validator:      validator.New(),
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.productService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// BrowseCategory reads the filter and sort from query parameters:
// ?sort=price_asc&minPrice=1000&maxPrice=50000 (prices in minor units).
func (h *ProductHandler) BrowseCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categoryID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		filter := catalog.Filter{Sort: catalog.ParseSortKey(r.URL.Query().Get("sort"))}

		if raw := r.URL.Query().Get("minPrice"); raw != "" {
			minPrice, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				response.Error(w, apperrors.BadRequestError("Invalid minPrice"))

				return
			}

			filter.MinPrice = &minPrice
		}

		if raw := r.URL.Query().Get("maxPrice"); raw != "" {
			maxPrice, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				response.Error(w, apperrors.BadRequestError("Invalid maxPrice"))

				return
			}

			filter.MaxPrice = &maxPrice
		}

		products, err := h.productService.BrowseCategory(r.Context(), categoryID, filter)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := parsePagination(r)

		result, err := h.productService.List(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *ProductHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req models.CreateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
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

		var req models.UpdateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
