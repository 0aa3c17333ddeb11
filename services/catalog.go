package services

import (
	"sort"
	"strings"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"
)

// Sort keys accepted by the catalog listing endpoints.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// Status filter values for the admin listing.
const (
	StatusAll      = "all"
	StatusFeatured = "featured"
	StatusRegular  = "regular"
)

// CatalogCriteria is the full set of filter/sort inputs for a product listing.
// Zero values mean "no filtering": empty Search skips text matching, an empty
// or "all" Category skips category matching, an empty or "all" Status skips
// the featured filter, and an empty Sort falls back to featured-first.
type CatalogCriteria struct {
	Search   string
	Category string
	Status   string
	Sort     string
}

// FilterProducts derives the ordered product view for one set of criteria.
// It is a pure function: the input slice is never mutated and calling it
// twice with the same inputs yields the same output. No matches yields an
// empty slice, not an error.
func FilterProducts(products []models.Product, criteria CatalogCriteria) []models.Product {
	result := make([]models.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	for _, p := range products {
		if !matchesCategory(p, criteria.Category) {
			continue
		}
		if !matchesStatus(p, criteria.Status) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, criteria.Sort)
	return result
}

func matchesCategory(p models.Product, category string) bool {
	if category == "" || category == "all" {
		return true
	}
	return p.Category == category
}

func matchesStatus(p models.Product, status string) bool {
	switch status {
	case StatusFeatured:
		return p.Featured
	case StatusRegular:
		return !p.Featured
	default:
		return true
	}
}

func matchesSearch(p models.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func sortProducts(products []models.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title > products[j].Title
		})
	default:
		// featured-first: stable partition, relative order preserved
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}
}
