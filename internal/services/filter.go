// internal/services/filter.go
package services

import (
	"sort"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

// FilterDesigns applies f to designs without modifying the input. A zero
// filter returns the input unchanged; sort "popular" keeps input order.
func FilterDesigns(designs []models.Design, f models.FilterOptions) []models.Design {
	if f.IsZero() {
		return designs
	}

	out := make([]models.Design, 0, len(designs))
	for _, d := range designs {
		if len(f.Type) > 0 && !containsValue(f.Type, d.Type) {
			continue
		}
		if len(f.Material) > 0 && !containsValue(f.Material, d.Material) {
			continue
		}
		if len(f.Gemstone) > 0 && !containsValue(f.Gemstone, d.Gemstone) {
			continue
		}
		if f.PriceRange != nil && (d.Price < f.PriceRange[0] || d.Price > f.PriceRange[1]) {
			continue
		}
		out = append(out, d)
	}

	switch f.SortBy {
	case models.SortByDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case models.SortByPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case models.SortByPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

func containsValue[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
