package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
}

type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

type Restaurant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	ImageURL     string         `json:"image_url"`
	Rating       float64        `json:"rating"`
	ReviewCount  int            `json:"review_count"`
	CuisineTypes []string       `json:"cuisine_types"`
	DeliveryTime string         `json:"delivery_time"`
	PriceRange   string         `json:"price_range"`
	Menu         []MenuCategory `json:"menu,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	RestaurantID    string          `json:"restaurant_id"`
	RestaurantName  string          `json:"restaurant"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	QRCode          string          `json:"qr_code,omitempty"`
	CreatedAt       time.Time       `json:"date"`
	Items           []OrderItem     `json:"items"`
}

type OrderItem struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

const (
	EventOrderPlaced   = "order_placed"
	EventStatusChanged = "status_changed"
)

// OrderEvent is the payload published on the orders topic.
type OrderEvent struct {
	Type         string          `json:"type"`
	OrderID      string          `json:"order_id"`
	RestaurantID string          `json:"restaurant_id,omitempty"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Timestamp    time.Time       `json:"timestamp"`
}
