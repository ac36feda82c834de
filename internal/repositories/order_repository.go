package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils"
)

// ErrInsufficientStock is returned when an order line asks for more units
// than the product has left.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order, address *models.DeliveryAddress) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID, sellerID uuid.UUID, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder writes the optional delivery address, the order header, every
// line, and the matching stock decrements in one transaction. Nothing is
// visible until all of it committed.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order, address *models.DeliveryAddress) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if address != nil {

		addressQuery := `
			INSERT INTO delivery_addresses (id, user_id, full_name, phone, address_line1, address_line2, city, state, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`

		_, err := tx.ExecContext(dbCtx, addressQuery,
			address.ID, address.UserID, address.FullName, address.Phone,
			address.AddressLine1, address.AddressLine2, address.City, address.State)
		if err != nil {
			return fmt.Errorf("failed to save delivery address: %w", err)
		}

		order.DeliveryAddressID = &address.ID
	}

	orderQuery := `
		INSERT INTO orders (id, buyer_id, subtotal, delivery_fee, commission_amount, total_amount,
		                    delivery_method, delivery_address_id, notes, status, payment_status, payment_reference,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err = tx.ExecContext(dbCtx, orderQuery,
		order.ID, order.BuyerID, order.Subtotal, order.DeliveryFee, order.CommissionAmount,
		order.TotalAmount, order.DeliveryMethod, order.DeliveryAddressID, order.Notes,
		order.Status, order.PaymentStatus, order.PaymentReference)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, seller_id, quantity, unit_price, subtotal,
		                         commission_rate_bp, commission_amount, seller_payout, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`

	// The stock guard rejects the decrement when the product no longer has
	// enough units, which aborts the whole checkout.
	stockQuery := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`

	for _, item := range order.Items {

		_, err := tx.ExecContext(dbCtx, itemQuery,
			item.ID, order.ID, item.ProductID, item.SellerID, item.Quantity,
			item.UnitPrice, item.Subtotal, item.CommissionRateBP, item.CommissionAmount, item.SellerPayout)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}

		result, err := tx.ExecContext(dbCtx, stockQuery, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		updatedRows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		if updatedRows == 0 {
			return ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

const orderColumns = `o.id, o.buyer_id, o.subtotal, o.delivery_fee, o.commission_amount, o.total_amount,
	       o.delivery_method, o.delivery_address_id, o.notes, o.status, o.payment_status, o.payment_reference,
	       o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }, o *models.Order) error {
	return row.Scan(&o.ID, &o.BuyerID, &o.Subtotal, &o.DeliveryFee, &o.CommissionAmount, &o.TotalAmount,
		&o.DeliveryMethod, &o.DeliveryAddressID, &o.Notes, &o.Status, &o.PaymentStatus, &o.PaymentReference,
		&o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`

	order := &models.Order{}

	if err := scanOrder(r.DB.QueryRowContext(dbCtx, query, orderID), order); err != nil {
		return nil, err
	}

	items, err := r.listItems(dbCtx, orderID, uuid.Nil)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders o WHERE o.buyer_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, buyerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.collectOrders(dbCtx, query, buyerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {

		items, err := r.listItems(dbCtx, orders[i].ID, uuid.Nil)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items
	}

	return orders, total, nil
}

// ListBySeller returns orders that contain at least one of the seller's
// lines. Items are filtered down to that seller's own lines, so a seller
// never sees another seller's half of a mixed order.
func (r *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `
		SELECT COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
	`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, sellerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count seller orders: %w", err)
	}

	query := `
		SELECT DISTINCT ` + orderColumns + `
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.collectOrders(dbCtx, query, sellerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {

		items, err := r.listItems(dbCtx, orders[i].ID, sellerID)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items
	}

	return orders, total, nil
}

// UpdateStatus only succeeds when the order carries at least one of the
// seller's lines.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID, sellerID uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		  AND EXISTS (SELECT 1 FROM order_items WHERE order_id = $2 AND seller_id = $3)
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, orderID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
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

func (r *orderRepository) collectOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var o models.Order

		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// listItems loads the lines of one order. A non-nil sellerID narrows the
// result to that seller's lines.
func (r *orderRepository) listItems(ctx context.Context, orderID, sellerID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.seller_id, oi.quantity, oi.unit_price, oi.subtotal,
		       oi.commission_rate_bp, oi.commission_amount, oi.seller_payout, p.name, oi.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1 AND ($2::uuid = '00000000-0000-0000-0000-000000000000' OR oi.seller_id = $2)
		ORDER BY oi.created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SellerID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.CommissionRateBP, &item.CommissionAmount,
			&item.SellerPayout, &item.ProductName, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
