package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"food-storefront/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSeed = errors.New("invalid catalog seed")

type seedFile struct {
	Restaurants []seedRestaurant `yaml:"restaurants"`
}

type seedRestaurant struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	ImageURL     string         `yaml:"image_url"`
	Rating       float64        `yaml:"rating"`
	ReviewCount  int            `yaml:"review_count"`
	CuisineTypes []string       `yaml:"cuisine_types"`
	DeliveryTime string         `yaml:"delivery_time"`
	PriceRange   string         `yaml:"price_range"`
	Menu         []seedCategory `yaml:"menu"`
}

type seedCategory struct {
	Category string     `yaml:"category"`
	Items    []seedItem `yaml:"items"`
}

type seedItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	ImageURL    string `yaml:"image_url"`
}

func LoadSeedFile(path string) ([]domain.Restaurant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a YAML catalog. Restaurant ids must be unique, item ids
// unique within a restaurant, prices non-negative and ratings within 0-5.
func LoadSeed(r io.Reader) ([]domain.Restaurant, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	restaurants := make([]domain.Restaurant, 0, len(seed.Restaurants))
	ids := make(map[string]bool)
	for _, sr := range seed.Restaurants {
		if sr.ID == "" {
			return nil, fmt.Errorf("%w: restaurant %q has no id", ErrInvalidSeed, sr.Name)
		}
		if ids[sr.ID] {
			return nil, fmt.Errorf("%w: duplicate restaurant id %q", ErrInvalidSeed, sr.ID)
		}
		ids[sr.ID] = true

		if sr.Rating < 0 || sr.Rating > 5 {
			return nil, fmt.Errorf("%w: restaurant %q rating %.1f outside 0-5", ErrInvalidSeed, sr.ID, sr.Rating)
		}

		menu, err := buildMenu(sr)
		if err != nil {
			return nil, err
		}

		restaurants = append(restaurants, domain.Restaurant{
			ID:           sr.ID,
			Name:         sr.Name,
			ImageURL:     sr.ImageURL,
			Rating:       sr.Rating,
			ReviewCount:  sr.ReviewCount,
			CuisineTypes: sr.CuisineTypes,
			DeliveryTime: sr.DeliveryTime,
			PriceRange:   sr.PriceRange,
			Menu:         menu,
		})
	}
	return restaurants, nil
}

func buildMenu(sr seedRestaurant) ([]domain.MenuCategory, error) {
	itemIDs := make(map[string]bool)
	menu := make([]domain.MenuCategory, 0, len(sr.Menu))
	for _, sc := range sr.Menu {
		category := domain.MenuCategory{Name: sc.Category, Items: make([]domain.MenuItem, 0, len(sc.Items))}
		for _, si := range sc.Items {
			if si.ID == "" || itemIDs[si.ID] {
				return nil, fmt.Errorf("%w: restaurant %q has missing or duplicate item id %q", ErrInvalidSeed, sr.ID, si.ID)
			}
			itemIDs[si.ID] = true

			price, err := decimal.NewFromString(si.Price)
			if err != nil {
				return nil, fmt.Errorf("%w: item %q price %q: %v", ErrInvalidSeed, si.ID, si.Price, err)
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("%w: item %q has negative price", ErrInvalidSeed, si.ID)
			}

			category.Items = append(category.Items, domain.MenuItem{
				ID:          si.ID,
				Name:        si.Name,
				Description: si.Description,
				Price:       price,
				ImageURL:    si.ImageURL,
			})
		}
		menu = append(menu, category)
	}
	return menu, nil
}
