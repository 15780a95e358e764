package service

import (
	"context"

	"food-storefront/internal/cart"
	"food-storefront/internal/domain"
	"food-storefront/storefront-svc/internal/storage"
)

type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
}

type CartRepository interface {
	LoadCart(ctx context.Context, sessionID string) (cart.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c cart.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
	AcquireCheckout(ctx context.Context, sessionID string) (bool, error)
	ReleaseCheckout(ctx context.Context, sessionID string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type CatalogServiceInterface interface {
	List(ctx context.Context, search, cuisine string) ([]domain.Restaurant, error)
	Get(ctx context.Context, id string) (*RestaurantDetail, error)
	Cuisines(ctx context.Context) ([]string, error)
	FindItem(ctx context.Context, restaurantID, itemID string) (domain.MenuItem, error)
}

type CartServiceInterface interface {
	NewSession() string
	Get(ctx context.Context, sessionID string) (*CartView, error)
	Add(ctx context.Context, sessionID, restaurantID, itemID string, quantity int) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*CartView, error)
	Remove(ctx context.Context, sessionID, itemID string) (*CartView, error)
	Clear(ctx context.Context, sessionID string) error
}

type OrderServiceInterface interface {
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (*OrderDetail, error)
	QRCode(ctx context.Context, orderID string) ([]byte, error)
	QRLink(orderID string) string
}

var (
	_ CatalogRepository = (*storage.MemoryCatalog)(nil)
	_ CartRepository    = (*storage.RedisCartStore)(nil)
	_ OrderRepository   = (*storage.PostgresRepository)(nil)
	_ EventPublisher    = (*storage.KafkaPublisher)(nil)
)
