package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/pricing"
)

func TestSubtotal(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, int64(0), pricing.Subtotal(nil))
	})

	t.Run("Sums Price Times Quantity", func(t *testing.T) {
		lines := []pricing.Line{
			{UnitPrice: 5000, Quantity: 2},
			{UnitPrice: 1500, Quantity: 1},
		}

		assert.Equal(t, int64(11500), pricing.Subtotal(lines))
	})
}

func TestDeliveryFee(t *testing.T) {
	cfg := pricing.DefaultConfig()

	assert.Equal(t, int64(0), cfg.DeliveryFee(models.DeliveryPickup))
	assert.Equal(t, int64(2000), cfg.DeliveryFee(models.DeliveryHomeDelivery))
}

func TestSplit(t *testing.T) {
	cfg := pricing.DefaultConfig()

	t.Run("Ten Percent Commission", func(t *testing.T) {
		commission, payout := cfg.Split(11500)

		assert.Equal(t, int64(1150), commission)
		assert.Equal(t, int64(10350), payout)
	})

	t.Run("Commission Plus Payout Equals Subtotal", func(t *testing.T) {
		for _, subtotal := range []int64{0, 1, 99, 10001, 123456789} {
			commission, payout := cfg.Split(subtotal)
			assert.Equal(t, subtotal, commission+payout)
		}
	})
}

func TestQuote(t *testing.T) {
	cfg := pricing.DefaultConfig()
	lines := []pricing.Line{
		{UnitPrice: 5000, Quantity: 2},
		{UnitPrice: 1500, Quantity: 1},
	}

	t.Run("Pickup", func(t *testing.T) {
		quote := cfg.Quote(lines, models.DeliveryPickup)

		assert.Equal(t, int64(11500), quote.Subtotal)
		assert.Equal(t, int64(0), quote.DeliveryFee)
		assert.Equal(t, int64(1150), quote.CommissionAmount)
		assert.Equal(t, int64(11500), quote.Total)
	})

	t.Run("Home Delivery", func(t *testing.T) {
		quote := cfg.Quote(lines, models.DeliveryHomeDelivery)

		assert.Equal(t, int64(2000), quote.DeliveryFee)
		assert.Equal(t, int64(13500), quote.Total)
	})

	t.Run("Commission Is Never An Addend Of Total", func(t *testing.T) {
		quote := cfg.Quote(lines, models.DeliveryHomeDelivery)

		assert.Equal(t, quote.Subtotal+quote.DeliveryFee, quote.Total)
	})
}

func TestLineSplit(t *testing.T) {
	cfg := pricing.DefaultConfig()

	split := cfg.LineSplit(5000, 2)

	assert.Equal(t, int64(10000), split.Subtotal)
	assert.Equal(t, int64(1000), split.CommissionAmount)
	assert.Equal(t, int64(9000), split.SellerPayout)
}
