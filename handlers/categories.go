package handlers

import (
	"net/http"
	"strings"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCategories handles GET /api/v1/categories
func GetCategories(c *gin.Context) {
	rows, err := DB.Query("SELECT id, name, slug, created_at FROM categories ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan category"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /api/v1/admin/categories
func CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	var exists bool
	if err := DB.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", name).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	categoryID := uuid.New()
	slug := slugify(name)
	if _, err := DB.Exec("INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, now())", categoryID, name, slug); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": gin.H{"id": categoryID, "name": name, "slug": slug},
		"message":  "Category created successfully",
	})
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id. Categories
// still referenced by products cannot be removed.
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var name string
	err = DB.QueryRow("SELECT name FROM categories WHERE id = $1", categoryID).Scan(&name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var inUse int
	if err := DB.QueryRow("SELECT COUNT(*) FROM products WHERE category = $1", name).Scan(&inUse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category is still in use", "products": inUse})
		return
	}

	if _, err := DB.Exec("DELETE FROM categories WHERE id = $1", categoryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
