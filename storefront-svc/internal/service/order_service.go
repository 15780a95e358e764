package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"food-storefront/internal/catalog"
	"food-storefront/internal/domain"
	"food-storefront/internal/pricing"
	"food-storefront/internal/tracker"
	"food-storefront/storefront-svc/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrForeignItem        = errors.New("cart item is not on the restaurant's menu")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

type CheckoutRequest struct {
	RestaurantID    string `json:"restaurant_id"`
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `json:"payment_method"`
}

// OrderDetail is an order together with its stage progress.
type OrderDetail struct {
	*domain.Order
	Progress []tracker.Step `json:"progress"`
}

type OrderService struct {
	orders    OrderRepository
	carts     CartRepository
	catalog   CatalogRepository
	publisher EventPublisher
	qrEncoder QRGenerator
	calc      pricing.Calculator
	stages    []tracker.Stage
	now       func() time.Time
}

func NewOrderService(orders OrderRepository, carts CartRepository, catalog CatalogRepository,
	publisher EventPublisher, qr QRGenerator, calc pricing.Calculator) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		catalog:   catalog,
		publisher: publisher,
		qrEncoder: qr,
		calc:      calc,
		stages:    tracker.DefaultStages,
		now:       time.Now,
	}
}

// Checkout turns the session's cart into a placed order and empties the
// cart. Only one checkout per session runs at a time, and every line must
// come from the requested restaurant's menu. QR and event failures are
// logged and do not fail the checkout.
func (s *OrderService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	acquired, err := s.carts.AcquireCheckout(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lock checkout: %w", err)
	}
	if !acquired {
		return nil, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.carts.ReleaseCheckout(ctx, sessionID); err != nil {
			log.Printf("WARNING: failed to release checkout lock for %s: %v", sessionID, err)
		}
	}()

	c, err := s.carts.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	rest, err := getRestaurant(ctx, s.catalog, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	for _, line := range c.Lines() {
		if _, ok := catalog.FindItem(*rest, line.Item.ID); !ok {
			return nil, fmt.Errorf("%w: %s not in restaurant %s", ErrForeignItem, line.Item.ID, rest.ID)
		}
	}

	quote := s.calc.Quote(c)
	order := &domain.Order{
		ID:              uuid.NewString(),
		RestaurantID:    rest.ID,
		RestaurantName:  rest.Name,
		Subtotal:        quote.Subtotal,
		DeliveryFee:     quote.DeliveryFee,
		Tax:             quote.Tax,
		Total:           quote.Total,
		Status:          s.stages[0].ID,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       s.now().UTC(),
	}
	for _, line := range c.Lines() {
		order.Items = append(order.Items, domain.OrderItem{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Quantity: line.Quantity,
			Price:    line.Item.Price,
		})
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	log.Printf("[storefront-svc] order %s placed: restaurant=%s items=%d total=%s",
		order.ID, order.RestaurantID, quote.ItemCount, order.Total.StringFixed(2))

	s.storeQRCode(ctx, order.ID)
	order.QRCode = s.QRLink(order.ID)

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:         domain.EventOrderPlaced,
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Status:       order.Status,
			Total:        order.Total,
			Timestamp:    order.CreatedAt,
		}
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			log.Printf("WARNING: failed to publish order_placed for %s: %v", order.ID, err)
		}
	}

	if err := s.carts.DeleteCart(ctx, sessionID); err != nil {
		log.Printf("WARNING: failed to clear cart %s after order %s: %v", sessionID, order.ID, err)
	}

	return order, nil
}

func (s *OrderService) storeQRCode(ctx context.Context, orderID string) {
	if s.qrEncoder == nil {
		return
	}
	qr, err := s.qrEncoder.Generate(orderID)
	if err != nil {
		log.Printf("WARNING: failed to generate QR code for order %s: %v", orderID, err)
		return
	}
	if err := s.orders.SaveQRCode(ctx, orderID, qr); err != nil {
		log.Printf("WARNING: failed to store QR code for order %s: %v", orderID, err)
	}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].QRCode = s.QRLink(orders[i].ID)
	}
	return orders, nil
}

// Get returns the order with its progress. When the stored status is not a
// known stage the order is still returned, with an error wrapping
// tracker.ErrUnknownStage and no progress.
func (s *OrderService) Get(ctx context.Context, orderID string) (*OrderDetail, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	order.QRCode = s.QRLink(order.ID)

	detail := &OrderDetail{Order: order}
	steps, err := s.Progress(order.Status)
	if err != nil {
		return detail, fmt.Errorf("order %s: %w", orderID, err)
	}
	detail.Progress = steps
	return detail, nil
}

func (s *OrderService) Progress(status string) ([]tracker.Step, error) {
	return tracker.Progress(s.stages, status)
}

// QRCode returns the stored receipt code, regenerating it when missing.
func (s *OrderService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	qr, err := s.orders.GetQRCode(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		regenerated, err := s.qrEncoder.Generate(orderID)
		if err != nil {
			return nil, fmt.Errorf("generate QR code: %w", err)
		}
		if err := s.orders.SaveQRCode(ctx, orderID, regenerated); err != nil {
			log.Printf("WARNING: failed to cache regenerated QR code for %s: %v", orderID, err)
		}
		return regenerated, nil
	}
	return qr, nil
}

func (s *OrderService) QRLink(orderID string) string {
	return fmt.Sprintf("/api/orders/%s/qrcode", orderID)
}

var _ OrderServiceInterface = (*OrderService)(nil)
