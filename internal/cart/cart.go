// Package cart holds the shopping cart as an immutable snapshot.
//
// Every operation returns a new Cart and leaves its receiver untouched, so a
// snapshot handed to one caller never changes under it. The zero value is an
// empty cart.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"food-storefront/internal/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// MaxQuantity bounds a single line so it fits the order_items.quantity column.
const MaxQuantity = math.MaxInt32

// Line is one catalog item and its requested quantity.
type Line struct {
	Item     domain.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

type Cart struct {
	lines map[string]Line
}

func New() Cart {
	return Cart{}
}

// FromLines rebuilds a snapshot, rejecting lines with a quantity below one.
// Lines sharing an item id are merged.
func FromLines(lines []Line) (Cart, error) {
	c := New()
	for _, line := range lines {
		next, err := c.AddItem(line.Item, line.Quantity)
		if err != nil {
			return Cart{}, fmt.Errorf("line %q: %w", line.Item.ID, err)
		}
		c = next
	}
	return c, nil
}

// AddItem adds quantity to the item's line, creating it when absent. The
// resulting line may not exceed MaxQuantity.
func (c Cart) AddItem(item domain.MenuItem, quantity int) (Cart, error) {
	if quantity <= 0 {
		return c, ErrInvalidQuantity
	}
	line, ok := c.lines[item.ID]
	if !ok {
		line = Line{Item: item}
	}
	if quantity > MaxQuantity-line.Quantity {
		return c, tooLarge(item.ID)
	}
	line.Quantity += quantity

	next := c.clone()
	next.lines[item.ID] = line
	return next, nil
}

// SetQuantity replaces the line's quantity. A non-positive quantity removes
// the line; an unknown id leaves the cart as it is.
func (c Cart) SetQuantity(itemID string, quantity int) (Cart, error) {
	line, ok := c.lines[itemID]
	if !ok {
		return c, nil
	}
	if quantity <= 0 {
		return c.RemoveItem(itemID), nil
	}
	if quantity > MaxQuantity {
		return c, tooLarge(itemID)
	}
	next := c.clone()
	line.Quantity = quantity
	next.lines[itemID] = line
	return next, nil
}

func tooLarge(itemID string) error {
	return fmt.Errorf("%w: item %q above %d", ErrInvalidQuantity, itemID, MaxQuantity)
}

func (c Cart) RemoveItem(itemID string) Cart {
	if _, ok := c.lines[itemID]; !ok {
		return c
	}
	next := c.clone()
	delete(next.lines, itemID)
	return next
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c Cart) Line(itemID string) (Line, bool) {
	line, ok := c.lines[itemID]
	return line, ok
}

// Lines returns the cart's lines ordered by item id.
func (c Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Item.ID < lines[j].Item.ID })
	return lines
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	restored, err := FromLines(lines)
	if err != nil {
		return err
	}
	*c = restored
	return nil
}

func (c Cart) clone() Cart {
	lines := make(map[string]Line, len(c.lines)+1)
	for id, line := range c.lines {
		lines[id] = line
	}
	return Cart{lines: lines}
}
