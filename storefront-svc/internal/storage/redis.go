package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-storefront/internal/cart"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps one JSON-encoded cart per session. Every save
// refreshes the TTL, so idle carts expire.
type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// CheckoutLockTTL bounds how long a crashed checkout can block its session.
const CheckoutLockTTL = 30 * time.Second

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func (s *RedisCartStore) CartKey(sessionID string) string {
	return "cart:" + sessionID
}

// LoadCart returns an empty cart for unknown or expired sessions.
func (s *RedisCartStore) LoadCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	raw, err := s.Client.Get(ctx, s.CartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return cart.Cart{}, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return cart.Cart{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return c, nil
}

func (s *RedisCartStore) SaveCart(ctx context.Context, sessionID string, c cart.Cart) error {
	if c.IsEmpty() {
		return s.DeleteCart(ctx, sessionID)
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", sessionID, err)
	}
	return s.Client.Set(ctx, s.CartKey(sessionID), payload, s.TTL).Err()
}

func (s *RedisCartStore) DeleteCart(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, s.CartKey(sessionID)).Err()
}

func (s *RedisCartStore) CheckoutKey(sessionID string) string {
	return "checkout:" + sessionID
}

// AcquireCheckout reports false while another checkout holds the session.
func (s *RedisCartStore) AcquireCheckout(ctx context.Context, sessionID string) (bool, error) {
	return s.Client.SetNX(ctx, s.CheckoutKey(sessionID), 1, CheckoutLockTTL).Result()
}

func (s *RedisCartStore) ReleaseCheckout(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, s.CheckoutKey(sessionID)).Err()
}
