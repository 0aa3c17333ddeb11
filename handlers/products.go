package handlers

import (
	"database/sql"
	"net/http"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"
	"github.com/Adnanwebguy1996/nex-goods-emporium/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fetchProducts loads the full catalog snapshot; filtering and sorting happen
// in memory so the listing endpoints share one query.
func fetchProducts() ([]models.Product, error) {
	query := `
		SELECT id, title, description, price, category, image, featured,
		       file_type, file_size, file_url, external_link, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`
	rows, err := DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Image, &p.Featured,
			&p.FileType, &p.FileSize, &p.FileURL, &p.ExternalLink, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProducts handles GET /api/v1/products with search, category and sort
// query parameters.
func GetProducts(c *gin.Context) {
	products, err := fetchProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	filtered := services.FilterProducts(products, services.CatalogCriteria{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", "all"),
		Sort:     c.DefaultQuery("sort", services.SortFeatured),
	})

	// Delivery links are only exposed after purchase
	for i := range filtered {
		filtered[i].FileURL = nil
		filtered[i].ExternalLink = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"products": filtered,
		"total":    len(filtered),
	})
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var p models.Product
	query := `
		SELECT id, title, description, price, category, image, featured,
		       file_type, file_size, file_url, external_link, created_at, updated_at
		FROM products WHERE id = $1
	`
	err = DB.QueryRow(query, productID).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Image, &p.Featured,
		&p.FileType, &p.FileSize, &p.FileURL, &p.ExternalLink, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	// Delivery links are only exposed after purchase
	p.FileURL = nil
	p.ExternalLink = nil

	c.JSON(http.StatusOK, gin.H{"product": p})
}

// GetFeaturedProducts handles GET /api/v1/products/featured
func GetFeaturedProducts(c *gin.Context) {
	query := `
		SELECT id, title, description, price, category, image, featured,
		       file_type, file_size, file_url, external_link, created_at, updated_at
		FROM products
		WHERE featured = true
		ORDER BY created_at DESC
	`
	rows, err := DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Image, &p.Featured,
			&p.FileType, &p.FileSize, &p.FileURL, &p.ExternalLink, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		p.FileURL = nil
		p.ExternalLink = nil
		products = append(products, p)
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}
