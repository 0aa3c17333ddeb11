package handlers

import (
	"net/http"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const sessionHeader = "X-Session-ID"

// sessionID pulls the client session id out of the request header. The same
// id the visitor tracker uses keys the cart.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return id, true
}

// GetCart handles GET /api/v1/cart. Items whose product has since been
// deleted are dropped from the response (and the cart) rather than erroring.
func GetCart(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	items := Carts.Items(session)
	if len(items) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []gin.H{}, "total": 0.0, "count": 0})
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID.String())
	}

	query := `
		SELECT id, title, description, price, category, image, featured,
		       file_type, file_size, created_at, updated_at
		FROM products WHERE id = ANY($1)
	`
	rows, err := DB.Query(query, pq.Array(ids))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart products"})
		return
	}
	defer rows.Close()

	productsByID := make(map[uuid.UUID]models.Product)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Image, &p.Featured,
			&p.FileType, &p.FileSize, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		productsByID[p.ID] = p
	}

	out := []gin.H{}
	total := 0.0
	count := 0
	for _, item := range items {
		product, exists := productsByID[item.ProductID]
		if !exists {
			// Product was deleted since it was added
			Carts.Remove(session, item.ProductID)
			continue
		}
		lineTotal := product.Price * float64(item.Quantity)
		total += lineTotal
		count += item.Quantity
		out = append(out, gin.H{
			"product":    product,
			"quantity":   item.Quantity,
			"line_total": lineTotal,
			"added_at":   item.AddedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": out, "total": total, "count": count})
}

// AddToCart handles POST /api/v1/cart/add
func AddToCart(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var exists bool
	if err := DB.QueryRow("SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", productID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := Carts.Add(session, productID, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
}

// UpdateCartItem handles PUT /api/v1/cart/update
func UpdateCartItem(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := Carts.SetQuantity(session, productID, *req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// RemoveFromCart handles DELETE /api/v1/cart/remove/:productId
func RemoveFromCart(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	Carts.Remove(session, productID)
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
}

// ClearCart handles DELETE /api/v1/cart/clear
func ClearCart(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	Carts.Clear(session)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
