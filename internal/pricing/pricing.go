// Package pricing converts cart lines into buyer totals and the platform
// commission split. All amounts are int64 minor units (kobo); the commission
// rate is expressed in basis points so no float ever touches money.
package pricing

import "github.com/uandc/arena-market/internal/models"

const bpDenominator = 10000

// Defaults match the platform policy: 10% commission, free pick-up at the
// U&C point, flat home delivery fee.
const (
	DefaultCommissionRateBP = 1000
	DefaultHomeDeliveryFee  = 2000
)

type Line struct {
	UnitPrice int64
	Quantity  int
}

type LineSplit struct {
	Subtotal         int64
	CommissionAmount int64
	SellerPayout     int64
}

// Quote is the buyer-facing breakdown of one checkout. CommissionAmount is a
// split of the subtotal for payout purposes, never an addend of Total.
type Quote struct {
	Subtotal         int64
	DeliveryFee      int64
	CommissionAmount int64
	Total            int64
}

type Config struct {
	CommissionRateBP int
	HomeDeliveryFee  int64
}

func DefaultConfig() Config {
	return Config{
		CommissionRateBP: DefaultCommissionRateBP,
		HomeDeliveryFee:  DefaultHomeDeliveryFee,
	}
}

func Subtotal(lines []Line) int64 {
	var total int64

	for _, line := range lines {
		total += line.UnitPrice * int64(line.Quantity)
	}

	return total
}

func (c Config) DeliveryFee(method models.DeliveryMethod) int64 {
	if method == models.DeliveryHomeDelivery {
		return c.HomeDeliveryFee
	}

	return 0
}

// Split divides a subtotal into the platform commission and the seller payout.
func (c Config) Split(subtotal int64) (commission, payout int64) {
	commission = subtotal * int64(c.CommissionRateBP) / bpDenominator

	return commission, subtotal - commission
}

func (c Config) LineSplit(unitPrice int64, quantity int) LineSplit {
	subtotal := unitPrice * int64(quantity)
	commission, payout := c.Split(subtotal)

	return LineSplit{
		Subtotal:         subtotal,
		CommissionAmount: commission,
		SellerPayout:     payout,
	}
}

func (c Config) Quote(lines []Line, method models.DeliveryMethod) Quote {
	subtotal := Subtotal(lines)
	commission, _ := c.Split(subtotal)
	fee := c.DeliveryFee(method)

	return Quote{
		Subtotal:         subtotal,
		DeliveryFee:      fee,
		CommissionAmount: commission,
		Total:            subtotal + fee,
	}
}
