package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

type PaymentStatus string

type DeliveryMethod string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	// DeliveryPickup is collection at the U&C pick-up point, free of charge.
	DeliveryPickup       DeliveryMethod = "pickup"
	DeliveryHomeDelivery DeliveryMethod = "home_delivery"
)

// DeliveryAddress is captured once per home-delivery checkout and never
// updated afterwards.
type DeliveryAddress struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderItem snapshots the unit price at purchase time and carries the
// commission split for its line: Subtotal = UnitPrice * Quantity,
// CommissionAmount = Subtotal * rate, SellerPayout = Subtotal - CommissionAmount.
type OrderItem struct {
	ID               uuid.UUID `json:"id"`
	OrderID          uuid.UUID `json:"order_id"`
	ProductID        uuid.UUID `json:"product_id"`
	SellerID         uuid.UUID `json:"seller_id"`
	Quantity         int       `json:"quantity"`
	UnitPrice        int64     `json:"unit_price"`
	Subtotal         int64     `json:"subtotal"`
	CommissionRateBP int       `json:"commission_rate_bp"`
	CommissionAmount int64     `json:"commission_amount"`
	SellerPayout     int64     `json:"seller_payout"`
	ProductName      string    `json:"product_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Order struct {
	ID                uuid.UUID      `json:"id"`
	BuyerID           uuid.UUID      `json:"buyer_id"`
	Subtotal          int64          `json:"subtotal"`
	DeliveryFee       int64          `json:"delivery_fee"`
	CommissionAmount  int64          `json:"commission_amount"`
	TotalAmount       int64          `json:"total_amount"`
	DeliveryMethod    DeliveryMethod `json:"delivery_method"`
	DeliveryAddressID *uuid.UUID     `json:"delivery_address_id,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	Status            OrderStatus    `json:"status"`
	PaymentStatus     PaymentStatus  `json:"payment_status"`
	PaymentReference  string         `json:"payment_reference"`
	Items             []OrderItem    `json:"items,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type DeliveryAddressRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
	AddressLine1 string `json:"address_line1" validate:"required,min=5,max=200"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,min=2,max=100"`
	State        string `json:"state" validate:"required,min=2,max=100"`
}

type CheckoutRequest struct {
	DeliveryMethod DeliveryMethod          `json:"delivery_method" validate:"required,oneof=pickup home_delivery"`
	Address        *DeliveryAddressRequest `json:"address,omitempty" validate:"omitempty"`
	Notes          string                  `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed delivered cancelled"`
}
