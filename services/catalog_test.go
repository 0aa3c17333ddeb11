package services

import (
	"testing"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(title string, price float64, category string, featured bool) models.Product {
	return models.Product{
		ID:          uuid.New(),
		Title:       title,
		Description: title + " description",
		Price:       price,
		Category:    category,
		Featured:    featured,
	}
}

func titles(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func testCatalog() []models.Product {
	return []models.Product{
		product("Ultimate UI Dashboard Template", 49.99, "Templates", true),
		product("Essential Icon Pack", 19.99, "Icons", false),
		product("E-commerce Booster Plugin", 39.99, "Plugins", true),
		product("Modern Landing Page Kit", 29.99, "Templates", false),
		product("SEO Mastery Course", 59.99, "Courses", false),
	}
}

func TestFilterProductsNoCriteria(t *testing.T) {
	catalog := testCatalog()
	result := FilterProducts(catalog, CatalogCriteria{})
	assert.Len(t, result, len(catalog))
}

func TestFilterProductsByCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{
			name:     "exact category",
			category: "Templates",
			want:     []string{"Ultimate UI Dashboard Template", "Modern Landing Page Kit"},
		},
		{
			name:     "all passes everything through",
			category: "all",
			want: []string{
				"Ultimate UI Dashboard Template", "Essential Icon Pack",
				"E-commerce Booster Plugin", "Modern Landing Page Kit", "SEO Mastery Course",
			},
		},
		{
			name:     "unknown category matches nothing",
			category: "Fonts",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterProducts(testCatalog(), CatalogCriteria{Category: tt.category})
			assert.Equal(t, tt.want, titles(result))
			for _, p := range result {
				if tt.category != "all" {
					assert.Equal(t, tt.category, p.Category)
				}
			}
		})
	}
}

func TestFilterProductsBySearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"title match case-insensitive", "ICON", []string{"Essential Icon Pack"}},
		{"description match", "booster plugin description", []string{"E-commerce Booster Plugin"}},
		{"category match", "courses", []string{"SEO Mastery Course"}},
		{"no match", "typeface", []string{}},
		{"whitespace only means no filter", "   ", []string{
			"Ultimate UI Dashboard Template", "Essential Icon Pack",
			"E-commerce Booster Plugin", "Modern Landing Page Kit", "SEO Mastery Course",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterProducts(testCatalog(), CatalogCriteria{Search: tt.search})
			assert.Equal(t, tt.want, titles(result))
		})
	}
}

func TestFilterProductsByStatus(t *testing.T) {
	featured := FilterProducts(testCatalog(), CatalogCriteria{Status: StatusFeatured})
	require.Len(t, featured, 2)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}

	regular := FilterProducts(testCatalog(), CatalogCriteria{Status: StatusRegular})
	require.Len(t, regular, 3)
	for _, p := range regular {
		assert.False(t, p.Featured)
	}
}

func TestFilterProductsCombinedCriteria(t *testing.T) {
	result := FilterProducts(testCatalog(), CatalogCriteria{
		Search:   "template",
		Category: "Templates",
		Status:   StatusFeatured,
	})
	assert.Equal(t, []string{"Ultimate UI Dashboard Template"}, titles(result))
}

func TestSortPriceAscending(t *testing.T) {
	result := FilterProducts(testCatalog(), CatalogCriteria{Sort: SortPriceAsc})
	require.NotEmpty(t, result)
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].Price, result[i].Price)
	}
}

func TestSortPriceDescending(t *testing.T) {
	result := FilterProducts(testCatalog(), CatalogCriteria{Sort: SortPriceDesc})
	require.NotEmpty(t, result)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Price, result[i].Price)
	}
}

func TestSortNameAscending(t *testing.T) {
	result := FilterProducts(testCatalog(), CatalogCriteria{Sort: SortNameAsc})
	require.NotEmpty(t, result)
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].Title, result[i].Title)
	}
}

func TestSortNameDescending(t *testing.T) {
	result := FilterProducts(testCatalog(), CatalogCriteria{Sort: SortNameDesc})
	require.NotEmpty(t, result)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Title, result[i].Title)
	}
}

func TestSortFeaturedFirstIsStable(t *testing.T) {
	result := FilterProducts(testCatalog(), CatalogCriteria{Sort: SortFeatured})

	// All featured items precede all regular items
	seenRegular := false
	for _, p := range result {
		if !p.Featured {
			seenRegular = true
		} else {
			assert.False(t, seenRegular, "featured item after a regular one")
		}
	}

	// Relative input order preserved within each partition
	assert.Equal(t, []string{
		"Ultimate UI Dashboard Template", "E-commerce Booster Plugin",
		"Essential Icon Pack", "Modern Landing Page Kit", "SEO Mastery Course",
	}, titles(result))
}

func TestFilterProductsIsIdempotent(t *testing.T) {
	criteria := CatalogCriteria{Search: "e", Category: "all", Sort: SortPriceAsc}
	catalog := testCatalog()

	first := FilterProducts(catalog, criteria)
	second := FilterProducts(catalog, criteria)
	assert.Equal(t, first, second)
}

func TestFilterProductsDoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	original := titles(catalog)

	FilterProducts(catalog, CatalogCriteria{Sort: SortPriceDesc})
	assert.Equal(t, original, titles(catalog))
}

func TestFilterProductsEmptyCatalog(t *testing.T) {
	result := FilterProducts(nil, CatalogCriteria{Search: "anything", Category: "Icons", Sort: SortPriceAsc})
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestFilterProductsExactExample(t *testing.T) {
	p1 := models.Product{ID: uuid.New(), Title: "Icon Pack", Price: 19.99, Category: "Icons"}
	p2 := models.Product{ID: uuid.New(), Title: "UI Kit", Price: 49.99, Category: "UI Kits", Featured: true}

	result := FilterProducts([]models.Product{p1, p2}, CatalogCriteria{Category: "all", Sort: SortPriceDesc})
	require.Len(t, result, 2)
	assert.Equal(t, "UI Kit", result[0].Title)
	assert.Equal(t, "Icon Pack", result[1].Title)

	matched := FilterProducts([]models.Product{p1, p2}, CatalogCriteria{Search: "icon"})
	require.Len(t, matched, 1)
	assert.Equal(t, "Icon Pack", matched[0].Title)
}
