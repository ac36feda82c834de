package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error)
	List(ctx context.Context, page, pageSize int) ([]models.Product, int, error)
	Search(ctx context.Context, term string, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.seller_id, p.category_id, p.name, p.description, p.price, p.stock_quantity, p.image_url, p.is_active, p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.StockQuantity, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `, c.id, c.name, c.description, c.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product := &models.Product{}
	category := &models.Category{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.SellerID, &product.CategoryID, &product.Name, &product.Description,
		&product.Price, &product.StockQuantity, &product.ImageURL, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt,
		&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		return nil, err
	}

	product.Category = category

	return product, nil
}

// ListByCategory returns the buyable products of one category, newest first.
// Inactive and out-of-stock products are never shown to buyers.
func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.category_id = $1 AND p.is_active = TRUE AND p.stock_quantity > 0
		ORDER BY p.created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) List(ctx context.Context, page, pageSize int) ([]models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products p WHERE p.is_active = TRUE AND p.stock_quantity > 0`

	if err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.is_active = TRUE AND p.stock_quantity > 0
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * pageSize

	rows, err := r.DB.QueryContext(dbCtx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.is_active = TRUE AND p.stock_quantity > 0
		  AND (p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%')
		ORDER BY p.created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, seller_id, category_id, name, description, price, stock_quantity, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.SellerID, product.CategoryID, product.Name, product.Description,
		product.Price, product.StockQuantity, product.ImageURL, product.IsActive).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4,
		    stock_quantity = $5, image_url = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND seller_id = $9
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.CategoryID, product.Name, product.Description, product.Price,
		product.StockQuantity, product.ImageURL, product.IsActive,
		product.ID, product.SellerID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, description, created_at FROM categories ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var c models.Category

		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *productRepository) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, description, created_at FROM categories WHERE id = $1`

	category := &models.Category{}

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product

	for rows.Next() {
		var p models.Product

		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
