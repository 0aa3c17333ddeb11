package handlers

import (
	"net/http"
	"strings"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetPaymentMethods handles GET /api/v1/payment-methods (active only, for
// the checkout form's instruction panels).
func GetPaymentMethods(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT id, name, label, instructions, is_active, created_at, updated_at
		FROM payment_methods WHERE is_active = true ORDER BY label
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
		return
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Label, &m.Instructions, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan payment method"})
			return
		}
		methods = append(methods, m)
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// GetAdminPaymentMethods handles GET /api/v1/admin/payment-methods
func GetAdminPaymentMethods(c *gin.Context) {
	rows, err := DB.Query(`
		SELECT id, name, label, instructions, is_active, created_at, updated_at
		FROM payment_methods ORDER BY label
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
		return
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Label, &m.Instructions, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan payment method"})
			return
		}
		methods = append(methods, m)
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// CreatePaymentMethod handles POST /api/v1/admin/payment-methods
func CreatePaymentMethod(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Label        string `json:"label" binding:"required"`
		Instructions string `json:"instructions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, label and instructions are required"})
		return
	}

	methodID := uuid.New()
	_, err := DB.Exec(`
		INSERT INTO payment_methods (id, name, label, instructions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, now(), now())
	`, methodID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Label), req.Instructions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": methodID, "message": "Payment method created"})
}

// UpdatePaymentMethod handles PUT /api/v1/admin/payment-methods/:id
func UpdatePaymentMethod(c *gin.Context) {
	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method ID"})
		return
	}

	var req struct {
		Label        string `json:"label" binding:"required"`
		Instructions string `json:"instructions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label and instructions are required"})
		return
	}

	result, err := DB.Exec(`
		UPDATE payment_methods SET label = $1, instructions = $2, updated_at = now() WHERE id = $3
	`, strings.TrimSpace(req.Label), req.Instructions, methodID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment method"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method updated"})
}

// TogglePaymentMethodStatus handles PUT /api/v1/admin/payment-methods/:id/status
func TogglePaymentMethodStatus(c *gin.Context) {
	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method ID"})
		return
	}

	var isActive bool
	err = DB.QueryRow(`
		UPDATE payment_methods SET is_active = NOT is_active, updated_at = now()
		WHERE id = $1 RETURNING is_active
	`, methodID).Scan(&isActive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_active": isActive, "message": "Payment method status updated"})
}
