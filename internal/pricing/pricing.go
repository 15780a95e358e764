// Package pricing derives the money figures shown for a cart.
//
// Amounts are computed at full precision and rounded to cents exactly once,
// when a figure leaves the package.
package pricing

import (
	"encoding/json"

	"food-storefront/internal/cart"

	"github.com/shopspring/decimal"
)

const places = 2

var (
	DefaultDeliveryFee = decimal.RequireFromString("5.00")
	DefaultTaxRate     = decimal.RequireFromString("0.08")
)

type Calculator struct {
	Fee     decimal.Decimal
	TaxRate decimal.Decimal
}

func NewCalculator(fee, taxRate decimal.Decimal) Calculator {
	return Calculator{Fee: fee, TaxRate: taxRate}
}

// Quote is the cart summary rendered next to the cart and at checkout.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// MarshalJSON renders every amount with exactly two decimals.
func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal    string `json:"subtotal"`
		DeliveryFee string `json:"delivery_fee"`
		Tax         string `json:"tax"`
		Total       string `json:"total"`
		ItemCount   int    `json:"item_count"`
	}{
		Subtotal:    q.Subtotal.StringFixed(places),
		DeliveryFee: q.DeliveryFee.StringFixed(places),
		Tax:         q.Tax.StringFixed(places),
		Total:       q.Total.StringFixed(places),
		ItemCount:   q.ItemCount,
	})
}

func (calc Calculator) Quote(c cart.Cart) Quote {
	sub := subtotal(c)
	fee := calc.DeliveryFee(sub)
	return Quote{
		Subtotal:    sub.Round(places),
		DeliveryFee: fee,
		Tax:         Tax(sub, calc.TaxRate),
		Total:       total(sub, fee, calc.TaxRate),
		ItemCount:   c.TotalQuantity(),
	}
}

// DeliveryFee is the flat fee for a non-empty order.
func (calc Calculator) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsPositive() {
		return calc.Fee.Round(places)
	}
	return decimal.Zero
}

func Subtotal(c cart.Cart) decimal.Decimal {
	return subtotal(c).Round(places)
}

func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Round(places)
}

func Total(c cart.Cart, deliveryFee, taxRate decimal.Decimal) decimal.Decimal {
	return total(subtotal(c), deliveryFee, taxRate)
}

func subtotal(c cart.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.Lines() {
		sum = sum.Add(line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

func total(subtotal, deliveryFee, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee).Add(subtotal.Mul(taxRate)).Round(places)
}
