package pricing_test

import (
	"encoding/json"
	"testing"

	"food-storefront/internal/cart"
	"food-storefront/internal/domain"
	"food-storefront/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, price string) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: id, Price: decimal.RequireFromString(price)}
}

func TestCalculator_QuoteSingleItem(t *testing.T) {
	c, err := cart.New().AddItem(item("m1", "12.99"), 1)
	require.NoError(t, err)

	quote := pricing.NewCalculator(pricing.DefaultDeliveryFee, pricing.DefaultTaxRate).Quote(c)

	assert.Equal(t, "12.99", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", quote.DeliveryFee.StringFixed(2))
	assert.Equal(t, "1.04", quote.Tax.StringFixed(2))
	assert.Equal(t, "19.03", quote.Total.StringFixed(2))
	assert.Equal(t, 1, quote.ItemCount)
}

func TestCalculator_QuoteCheckoutSummary(t *testing.T) {
	c, _ := cart.New().AddItem(item("m1", "12.99"), 1)
	c, _ = c.AddItem(item("a1", "5.99"), 2)

	quote := pricing.NewCalculator(pricing.DefaultDeliveryFee, pricing.DefaultTaxRate).Quote(c)

	assert.Equal(t, "24.97", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", quote.Tax.StringFixed(2))
	assert.Equal(t, "31.97", quote.Total.StringFixed(2))
	assert.Equal(t, 3, quote.ItemCount)
}

func TestCalculator_EmptyCartHasNoFee(t *testing.T) {
	quote := pricing.NewCalculator(pricing.DefaultDeliveryFee, pricing.DefaultTaxRate).Quote(cart.New())

	assert.True(t, quote.Subtotal.IsZero())
	assert.True(t, quote.DeliveryFee.IsZero())
	assert.True(t, quote.Tax.IsZero())
	assert.True(t, quote.Total.IsZero())
}

func TestDeliveryFee(t *testing.T) {
	calc := pricing.NewCalculator(decimal.RequireFromString("3.5"), pricing.DefaultTaxRate)

	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{name: "positive subtotal", subtotal: "0.01", want: "3.50"},
		{name: "zero subtotal", subtotal: "0", want: "0.00"},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := calc.DeliveryFee(decimal.RequireFromString(testCase.subtotal))
			assert.Equal(t, testCase.want, got.StringFixed(2))
		})
	}
}

func TestTax_RoundsToCents(t *testing.T) {
	assert.Equal(t, "1.04", pricing.Tax(decimal.RequireFromString("12.99"), pricing.DefaultTaxRate).StringFixed(2))
	assert.Equal(t, "0.00", pricing.Tax(decimal.Zero, pricing.DefaultTaxRate).StringFixed(2))
}

func TestTotal_SingleRoundingPoint(t *testing.T) {
	// 3 x 0.335 = 1.005 with tax 0.005025; rounding the parts first would give 1.02.
	c, _ := cart.New().AddItem(item("x", "0.335"), 3)
	rate := decimal.RequireFromString("0.005")

	got := pricing.Total(c, decimal.Zero, rate)
	assert.Equal(t, "1.01", got.StringFixed(2))
	assert.Equal(t, "1.01", pricing.Subtotal(c).StringFixed(2))
	assert.Equal(t, "0.01", pricing.Tax(decimal.RequireFromString("1.005"), rate).StringFixed(2))
}

func TestTotal_MonotoneInSubtotal(t *testing.T) {
	fee := pricing.DefaultDeliveryFee
	rate := pricing.DefaultTaxRate

	previous := decimal.Zero
	c := cart.New()
	for i := 0; i < 25; i++ {
		var err error
		c, err = c.AddItem(item("p", "0.37"), 1)
		require.NoError(t, err)

		current := pricing.Total(c, fee, rate)
		assert.True(t, current.GreaterThanOrEqual(previous), "total dropped at step %d", i)
		previous = current
	}
}

func TestQuote_JSONKeepsCents(t *testing.T) {
	c, _ := cart.New().AddItem(item("m1", "12.99"), 1)
	quote := pricing.NewCalculator(pricing.DefaultDeliveryFee, pricing.DefaultTaxRate).Quote(c)

	data, err := json.Marshal(quote)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subtotal":"12.99","delivery_fee":"5.00","tax":"1.04","total":"19.03","item_count":1}`, string(data))
}
