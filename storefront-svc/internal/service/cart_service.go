package service

import (
	"context"
	"errors"
	"fmt"

	"food-storefront/internal/cart"
	"food-storefront/internal/pricing"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid cart session")

// CartView is the snapshot returned after every cart operation.
type CartView struct {
	SessionID string        `json:"session_id"`
	Lines     []cart.Line   `json:"lines"`
	Quote     pricing.Quote `json:"quote"`
}

type CartService struct {
	carts   CartRepository
	catalog CatalogRepository
	calc    pricing.Calculator
}

func NewCartService(carts CartRepository, catalog CatalogRepository, calc pricing.Calculator) *CartService {
	return &CartService{carts: carts, catalog: catalog, calc: calc}
}

func (s *CartService) NewSession() string {
	return uuid.NewString()
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, c), nil
}

func (s *CartService) Add(ctx context.Context, sessionID, restaurantID, itemID string, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}
	item, err := findItem(ctx, s.catalog, restaurantID, itemID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, func(c cart.Cart) (cart.Cart, error) {
		return c.AddItem(item, quantity)
	})
}

// SetQuantity removes the line when quantity <= 0. Unknown items are left
// alone.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*CartView, error) {
	return s.update(ctx, sessionID, func(c cart.Cart) (cart.Cart, error) {
		return c.SetQuantity(itemID, quantity)
	})
}

func (s *CartService) Remove(ctx context.Context, sessionID, itemID string) (*CartView, error) {
	return s.update(ctx, sessionID, func(c cart.Cart) (cart.Cart, error) {
		return c.RemoveItem(itemID), nil
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	return s.carts.DeleteCart(ctx, sessionID)
}

func (s *CartService) update(ctx context.Context, sessionID string, apply func(cart.Cart) (cart.Cart, error)) (*CartView, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next, err := apply(c)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(ctx, sessionID, next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.view(sessionID, next), nil
}

func (s *CartService) load(ctx context.Context, sessionID string) (cart.Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return cart.Cart{}, err
	}
	c, err := s.carts.LoadCart(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

func (s *CartService) view(sessionID string, c cart.Cart) *CartView {
	return &CartView{SessionID: sessionID, Lines: c.Lines(), Quote: s.calc.Quote(c)}
}

func validateSession(sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSession, sessionID)
	}
	return nil
}

var _ CartServiceInterface = (*CartService)(nil)
