package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"
	"github.com/Adnanwebguy1996/nex-goods-emporium/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type productInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	Featured     bool    `json:"featured"`
	FileType     string  `json:"file_type"`
	FileSize     string  `json:"file_size"`
	FileURL      string  `json:"file_url"`
	ExternalLink string  `json:"external_link"`
}

// validateProductInput checks a submission field by field. A non-empty map
// means the save must be aborted before touching the database.
func validateProductInput(in productInput) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "Description is required"
	}
	if in.Price < 0 {
		fields["price"] = "Price cannot be negative"
	}
	if strings.TrimSpace(in.Category) == "" {
		fields["category"] = "Category is required"
	} else {
		var exists bool
		if err := DB.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", in.Category).Scan(&exists); err == nil && !exists {
			fields["category"] = "Unknown category"
		}
	}
	if in.FileURL != "" && in.ExternalLink != "" {
		fields["external_link"] = "Provide either an uploaded file or an external link, not both"
	}
	if in.ExternalLink != "" {
		if u, err := url.ParseRequestURI(in.ExternalLink); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			fields["external_link"] = "External link must be a valid http(s) URL"
		}
	}

	return fields
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// GetAdminProducts handles GET /api/v1/admin/products with the extra status
// filter the CMS dashboard uses.
func GetAdminProducts(c *gin.Context) {
	products, err := fetchProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	filtered := services.FilterProducts(products, services.CatalogCriteria{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", "all"),
		Status:   c.DefaultQuery("status", services.StatusAll),
		Sort:     c.DefaultQuery("sort", services.SortFeatured),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": filtered,
		"total":    len(filtered),
	})
}

// GetAdminProduct handles GET /api/v1/admin/products/:id (delivery links included)
func GetAdminProduct(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"product": p})
}

// CreateProduct handles POST /api/v1/admin/products
func CreateProduct(c *gin.Context) {
	var req productInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if fields := validateProductInput(req); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
		return
	}

	productID := uuid.New()
	query := `
		INSERT INTO products (id, title, description, price, category, image, featured,
		                      file_type, file_size, file_url, external_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
	`
	_, err := DB.Exec(query,
		productID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Description),
		req.Price, req.Category, req.Image, req.Featured,
		nullable(req.FileType), nullable(req.FileSize), nullable(req.FileURL), nullable(req.ExternalLink),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      productID,
		"message": "Product created successfully",
	})
}

// UpdateProduct handles PUT /api/v1/admin/products/:id with full-replace
// semantics: every column is overwritten from the submission.
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req productInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if fields := validateProductInput(req); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
		return
	}

	query := `
		UPDATE products
		SET title = $1, description = $2, price = $3, category = $4, image = $5, featured = $6,
		    file_type = $7, file_size = $8, file_url = $9, external_link = $10, updated_at = now()
		WHERE id = $11
	`
	result, err := DB.Exec(query,
		strings.TrimSpace(req.Title), strings.TrimSpace(req.Description),
		req.Price, req.Category, req.Image, req.Featured,
		nullable(req.FileType), nullable(req.FileSize), nullable(req.FileURL), nullable(req.ExternalLink),
		productID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id. Order items keep
// their snapshot; the row's Cloudinary assets are removed best-effort after
// the delete commits.
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var image string
	var fileURL sql.NullString
	err = DB.QueryRow("SELECT image, file_url FROM products WHERE id = $1", productID).Scan(&image, &fileURL)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	result, err := DB.Exec("DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if services.Cloudinary != nil {
		if publicID := services.ExtractPublicID(image); publicID != "" {
			if err := services.Cloudinary.DeleteAsset(publicID, "image"); err != nil {
				log.Printf("Warning: failed to delete product image %s: %v", publicID, err)
			}
		}
		if fileURL.Valid {
			if publicID := services.ExtractPublicID(fileURL.String); publicID != "" {
				if err := services.Cloudinary.DeleteAsset(publicID, "raw"); err != nil {
					log.Printf("Warning: failed to delete product file %s: %v", publicID, err)
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetCatalogStats handles GET /api/v1/admin/products/stats for the dashboard
// header cards.
func GetCatalogStats(c *gin.Context) {
	var total, featured int
	var totalValue sql.NullFloat64

	err := DB.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE featured),
		       COALESCE(SUM(price), 0)
		FROM products
	`).Scan(&total, &featured, &totalValue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalog stats"})
		return
	}

	featuredShare := 0.0
	if total > 0 {
		featuredShare = float64(featured) / float64(total) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"total":          total,
		"featured":       featured,
		"featured_share": featuredShare,
		"total_value":    totalValue.Float64,
	})
}
