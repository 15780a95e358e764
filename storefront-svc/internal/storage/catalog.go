package storage

import (
	"context"
	"errors"

	"food-storefront/internal/domain"
)

var ErrNotFound = errors.New("not found")

// MemoryCatalog serves restaurants loaded once at startup. It is read-only,
// so it needs no locking.
type MemoryCatalog struct {
	restaurants []domain.Restaurant
	byID        map[string]int
}

func NewMemoryCatalog(restaurants []domain.Restaurant) *MemoryCatalog {
	byID := make(map[string]int, len(restaurants))
	for i, r := range restaurants {
		byID[r.ID] = i
	}
	return &MemoryCatalog{restaurants: restaurants, byID: byID}
}

func (c *MemoryCatalog) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	out := make([]domain.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out, nil
}

func (c *MemoryCatalog) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	r := c.restaurants[i]
	return &r, nil
}
