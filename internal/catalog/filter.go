package catalog

import (
	"strings"

	"food-storefront/internal/domain"
)

// Filter keeps the restaurants whose name or cuisine contains searchTerm
// (case-insensitive) and, when activeCuisine is set, that list it exactly.
// An empty activeCuisine means no cuisine is selected. Input order is kept.
func Filter(restaurants []domain.Restaurant, searchTerm, activeCuisine string) []domain.Restaurant {
	term := strings.ToLower(searchTerm)
	matched := make([]domain.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matchesSearch(r, term) && matchesCuisine(r, activeCuisine) {
			matched = append(matched, r)
		}
	}
	return matched
}

// ToggleCuisine returns the cuisine that is active after selected is clicked:
// clicking the active cuisine again clears it.
func ToggleCuisine(active, selected string) string {
	if active == selected {
		return ""
	}
	return selected
}

// Cuisines lists distinct cuisine tags in first-seen order.
func Cuisines(restaurants []domain.Restaurant) []string {
	seen := make(map[string]bool)
	var cuisines []string
	for _, r := range restaurants {
		for _, c := range r.CuisineTypes {
			if seen[c] {
				continue
			}
			seen[c] = true
			cuisines = append(cuisines, c)
		}
	}
	return cuisines
}

func matchesSearch(r domain.Restaurant, term string) bool {
	if term == "" || strings.Contains(strings.ToLower(r.Name), term) {
		return true
	}
	for _, c := range r.CuisineTypes {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}

func matchesCuisine(r domain.Restaurant, cuisine string) bool {
	if cuisine == "" {
		return true
	}
	for _, c := range r.CuisineTypes {
		if c == cuisine {
			return true
		}
	}
	return false
}
