package domain

import (
	"time"

	"food-storefront/internal/tracker"
)

// OrderStatus is the last recorded stage of an order.
type OrderStatus struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatusView struct {
	OrderID    string         `json:"order_id"`
	Status     string         `json:"status"`
	StageIndex int            `json:"stage_index"`
	Terminal   bool           `json:"terminal"`
	Steps      []tracker.Step `json:"steps"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
