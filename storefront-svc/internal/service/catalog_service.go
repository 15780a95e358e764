package service

import (
	"context"
	"errors"
	"fmt"

	"food-storefront/internal/catalog"
	"food-storefront/internal/domain"
	"food-storefront/storefront-svc/internal/storage"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
)

// RestaurantDetail is a restaurant with its menu category names in
// declaration order.
type RestaurantDetail struct {
	domain.Restaurant
	Categories []string `json:"categories"`
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context, search, cuisine string) ([]domain.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(restaurants, search, cuisine), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*RestaurantDetail, error) {
	rest, err := s.restaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RestaurantDetail{Restaurant: *rest, Categories: catalog.Categories(*rest)}, nil
}

func (s *CatalogService) Cuisines(ctx context.Context) ([]string, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	cuisines := catalog.Cuisines(restaurants)
	if cuisines == nil {
		cuisines = []string{}
	}
	return cuisines, nil
}

func (s *CatalogService) FindItem(ctx context.Context, restaurantID, itemID string) (domain.MenuItem, error) {
	return findItem(ctx, s.repo, restaurantID, itemID)
}

func (s *CatalogService) restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	return getRestaurant(ctx, s.repo, id)
}

func getRestaurant(ctx context.Context, repo CatalogRepository, id string) (*domain.Restaurant, error) {
	rest, err := repo.GetRestaurant(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

func findItem(ctx context.Context, repo CatalogRepository, restaurantID, itemID string) (domain.MenuItem, error) {
	rest, err := getRestaurant(ctx, repo, restaurantID)
	if err != nil {
		return domain.MenuItem{}, err
	}
	item, ok := catalog.FindItem(*rest, itemID)
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("%w: %s in restaurant %s", ErrItemNotFound, itemID, restaurantID)
	}
	return item, nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
