package cart_test

import (
	"encoding/json"
	"math"
	"testing"

	"food-storefront/internal/cart"
	"food-storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pizza = domain.MenuItem{ID: "m1", Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99")}
	bread = domain.MenuItem{ID: "a1", Name: "Garlic Bread", Price: decimal.RequireFromString("5.99")}
)

func TestCart_AddItem(t *testing.T) {
	tests := []struct {
		name     string
		adds     []int
		wantQty  int
		wantErr  error
		wantLine bool
	}{
		{name: "single add", adds: []int{1}, wantQty: 1, wantLine: true},
		{name: "accumulates", adds: []int{1, 2, 3}, wantQty: 6, wantLine: true},
		{name: "zero quantity", adds: []int{0}, wantErr: cart.ErrInvalidQuantity},
		{name: "negative quantity", adds: []int{-2}, wantErr: cart.ErrInvalidQuantity},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := cart.New()
			var err error
			for _, qty := range testCase.adds {
				c, err = c.AddItem(pizza, qty)
			}

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.True(t, c.IsEmpty())
				return
			}
			require.NoError(t, err)
			line, ok := c.Line("m1")
			assert.Equal(t, testCase.wantLine, ok)
			assert.Equal(t, testCase.wantQty, line.Quantity)
		})
	}
}

func TestCart_AddItemOrderIndependent(t *testing.T) {
	quantities := []int{4, 1, 7, 2}

	forward := cart.New()
	for _, q := range quantities {
		forward, _ = forward.AddItem(pizza, q)
	}
	backward := cart.New()
	for i := len(quantities) - 1; i >= 0; i-- {
		backward, _ = backward.AddItem(pizza, quantities[i])
	}

	f, _ := forward.Line("m1")
	b, _ := backward.Line("m1")
	assert.Equal(t, 14, f.Quantity)
	assert.Equal(t, f.Quantity, b.Quantity)
}

func TestCart_InvalidAddLeavesCartUnchanged(t *testing.T) {
	c, err := cart.New().AddItem(pizza, 2)
	require.NoError(t, err)

	after, err := c.AddItem(pizza, 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	line, _ := after.Line("m1")
	assert.Equal(t, 2, line.Quantity)
}

func TestCart_QuantityBound(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(cart.Cart) (cart.Cart, error)
		wantQty int
		wantErr bool
	}{
		{
			name:    "add up to the bound",
			apply:   func(c cart.Cart) (cart.Cart, error) { return c.AddItem(pizza, cart.MaxQuantity-3) },
			wantQty: cart.MaxQuantity,
		},
		{
			name:    "add past the bound",
			apply:   func(c cart.Cart) (cart.Cart, error) { return c.AddItem(pizza, cart.MaxQuantity-2) },
			wantQty: 3,
			wantErr: true,
		},
		{
			name:    "add max int",
			apply:   func(c cart.Cart) (cart.Cart, error) { return c.AddItem(pizza, math.MaxInt) },
			wantQty: 3,
			wantErr: true,
		},
		{
			name:    "set to the bound",
			apply:   func(c cart.Cart) (cart.Cart, error) { return c.SetQuantity("m1", cart.MaxQuantity) },
			wantQty: cart.MaxQuantity,
		},
		{
			name:    "set past the bound",
			apply:   func(c cart.Cart) (cart.Cart, error) { return c.SetQuantity("m1", cart.MaxQuantity+1) },
			wantQty: 3,
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			base, err := cart.New().AddItem(pizza, 3)
			require.NoError(t, err)

			next, err := testCase.apply(base)

			if testCase.wantErr {
				assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
			} else {
				require.NoError(t, err)
			}
			line, _ := next.Line("m1")
			assert.Equal(t, testCase.wantQty, line.Quantity)
			assert.True(t, next.TotalQuantity() > 0)
		})
	}
}

func TestCart_SetQuantity(t *testing.T) {
	base, _ := cart.New().AddItem(pizza, 3)

	tests := []struct {
		name     string
		itemID   string
		quantity int
		wantQty  int
		wantLine bool
	}{
		{name: "replace", itemID: "m1", quantity: 5, wantQty: 5, wantLine: true},
		{name: "zero removes", itemID: "m1", quantity: 0, wantLine: false},
		{name: "negative removes", itemID: "m1", quantity: -4, wantLine: false},
		{name: "unknown id is a no-op", itemID: "zz", quantity: 9, wantQty: 3, wantLine: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			next, err := base.SetQuantity(testCase.itemID, testCase.quantity)
			require.NoError(t, err)
			line, ok := next.Line("m1")
			assert.Equal(t, testCase.wantLine, ok)
			if ok {
				assert.Equal(t, testCase.wantQty, line.Quantity)
			}
			_, unknown := next.Line("zz")
			assert.False(t, unknown)
		})
	}
}

func TestCart_RemoveItem(t *testing.T) {
	c, _ := cart.New().AddItem(pizza, 1)
	c, _ = c.AddItem(bread, 2)

	removed := c.RemoveItem("a1")
	assert.Equal(t, 1, removed.Len())
	_, ok := removed.Line("a1")
	assert.False(t, ok)

	same := removed.RemoveItem("a1")
	assert.Equal(t, removed.Lines(), same.Lines())
}

func TestCart_TotalQuantity(t *testing.T) {
	assert.Equal(t, 0, cart.New().TotalQuantity())

	c, _ := cart.New().AddItem(pizza, 1)
	c, _ = c.AddItem(bread, 2)
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestCart_SnapshotsDoNotAlias(t *testing.T) {
	first, _ := cart.New().AddItem(pizza, 1)
	second, _ := first.AddItem(pizza, 1)
	third, _ := second.SetQuantity("m1", 10)
	fourth := third.RemoveItem("m1")

	l1, _ := first.Line("m1")
	l2, _ := second.Line("m1")
	l3, _ := third.Line("m1")
	assert.Equal(t, 1, l1.Quantity)
	assert.Equal(t, 2, l2.Quantity)
	assert.Equal(t, 10, l3.Quantity)
	assert.True(t, fourth.IsEmpty())
}

func TestCart_LinesSortedByID(t *testing.T) {
	c, _ := cart.New().AddItem(pizza, 1)
	c, _ = c.AddItem(bread, 1)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a1", lines[0].Item.ID)
	assert.Equal(t, "m1", lines[1].Item.ID)
}

func TestCart_JSONRoundTripKeepsLines(t *testing.T) {
	c, _ := cart.New().AddItem(pizza, 2)
	c, _ = c.AddItem(bread, 1)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored cart.Cart
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, 3, restored.TotalQuantity())
	line, _ := restored.Line("m1")
	assert.True(t, line.Item.Price.Equal(pizza.Price))
}

func TestFromLines_RejectsNonPositive(t *testing.T) {
	_, err := cart.FromLines([]cart.Line{{Item: pizza, Quantity: 0}})
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	var c cart.Cart
	err = json.Unmarshal([]byte(`[{"item":{"id":"m1","price":"1"},"quantity":-1}]`), &c)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}
