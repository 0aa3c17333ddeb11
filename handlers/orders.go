package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var orderStatuses = map[string]bool{
	"pending":   true,
	"paid":      true,
	"delivered": true,
	"cancelled": true,
}

func generateOrderNumber() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("NEX-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("NEX-%d-%s", time.Now().Unix(), strings.ToUpper(hex.EncodeToString(suffix)))
}

// CreateOrder handles POST /api/v1/orders: checkout of the session cart.
// The order is priced server-side from current product rows, created as
// pending, and answered with the chosen payment method's instruction text.
func CreateOrder(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		Email           string `json:"email" binding:"required,email"`
		PaymentMethodID string `json:"payment_method_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	paymentMethodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method ID"})
		return
	}

	var method models.PaymentMethod
	err = DB.QueryRow(
		"SELECT id, name, label, instructions, is_active FROM payment_methods WHERE id = $1",
		paymentMethodID,
	).Scan(&method.ID, &method.Name, &method.Label, &method.Instructions, &method.IsActive)
	if err == sql.ErrNoRows || (err == nil && !method.IsActive) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method not available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := Carts.Items(session)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	tx, err := DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	orderID := uuid.New()
	orderNumber := generateOrderNumber()
	total := 0.0

	type pricedItem struct {
		productID uuid.UUID
		title     string
		unitPrice float64
		quantity  int
	}
	var priced []pricedItem

	for _, item := range items {
		var title string
		var price float64
		err := tx.QueryRow("SELECT title, price FROM products WHERE id = $1", item.ProductID).Scan(&title, &price)
		if err == sql.ErrNoRows {
			// Product disappeared between cart and checkout; skip it
			continue
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price order"})
			return
		}
		priced = append(priced, pricedItem{item.ProductID, title, price, item.Quantity})
		total += price * float64(item.Quantity)
	}

	if len(priced) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart contains no purchasable products"})
		return
	}

	_, err = tx.Exec(`
		INSERT INTO orders (id, order_number, email, payment_method_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'pending', $5, now(), now())
	`, orderID, orderNumber, strings.ToLower(req.Email), paymentMethodID, total)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	for _, item := range priced {
		_, err = tx.Exec(`
			INSERT INTO order_items (id, order_id, product_id, title, unit_price, quantity, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		`, uuid.New(), orderID, item.productID, item.title, item.unitPrice, item.quantity, item.unitPrice*float64(item.quantity))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order items"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit order"})
		return
	}

	Carts.Clear(session)

	c.JSON(http.StatusCreated, gin.H{
		"order": gin.H{
			"id":           orderID,
			"order_number": orderNumber,
			"status":       "pending",
			"total":        total,
		},
		"payment": gin.H{
			"method":       method.Name,
			"label":        method.Label,
			"instructions": method.Instructions,
		},
		"message": "Order created. Follow the payment instructions to complete your purchase.",
	})
}

// GetOrder handles GET /api/v1/orders/:id. Delivery links appear on items
// only once the order has been paid.
func GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	err = DB.QueryRow(`
		SELECT id, order_number, email, payment_method_id, status, total, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&order.ID, &order.OrderNumber, &order.Email, &order.PaymentMethodID,
		&order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	paid := order.Status == "paid" || order.Status == "delivered"

	rows, err := DB.Query(`
		SELECT oi.id, oi.product_id, oi.title, oi.unit_price, oi.quantity, oi.total_price,
		       p.file_url, p.external_link
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at
	`, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}
	defer rows.Close()

	items := []gin.H{}
	for rows.Next() {
		var item models.OrderItem
		var productID uuid.NullUUID
		var fileURL, externalLink sql.NullString
		if err := rows.Scan(
			&item.ID, &productID, &item.Title, &item.UnitPrice, &item.Quantity, &item.TotalPrice,
			&fileURL, &externalLink,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order item"})
			return
		}
		if productID.Valid {
			item.ProductID = &productID.UUID
		}
		entry := gin.H{
			"id":          item.ID,
			"product_id":  item.ProductID,
			"title":       item.Title,
			"unit_price":  item.UnitPrice,
			"quantity":    item.Quantity,
			"total_price": item.TotalPrice,
		}
		if paid {
			if fileURL.Valid {
				entry["download_url"] = fileURL.String
			} else if externalLink.Valid {
				entry["download_url"] = externalLink.String
			}
		}
		items = append(items, entry)
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

// GetAdminOrders handles GET /api/v1/admin/orders
func GetAdminOrders(c *gin.Context) {
	status := c.Query("status")
	query := `
		SELECT id, order_number, email, payment_method_id, status, total, created_at, updated_at
		FROM orders
	`
	var args []interface{}
	if status != "" {
		if !orderStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.Email, &order.PaymentMethodID,
			&order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order"})
			return
		}
		orders = append(orders, order)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	if !orderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	result, err := DB.Exec("UPDATE orders SET status = $1, updated_at = now() WHERE id = $2", req.Status, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "status": req.Status})
}
