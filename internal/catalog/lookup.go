package catalog

import "food-storefront/internal/domain"

// FindItem returns the first item with itemID, scanning categories in
// declaration order.
func FindItem(r domain.Restaurant, itemID string) (domain.MenuItem, bool) {
	for _, category := range r.Menu {
		for _, item := range category.Items {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	return domain.MenuItem{}, false
}

func Categories(r domain.Restaurant) []string {
	names := make([]string, 0, len(r.Menu))
	for _, category := range r.Menu {
		names = append(names, category.Name)
	}
	return names
}
