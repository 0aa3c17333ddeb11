package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots the product's title and price at checkout time, so the
// row stays meaningful after the product itself is deleted. ProductID is
// cleared when that happens.
type OrderItem struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	OrderID    uuid.UUID  `json:"order_id" db:"order_id"`
	ProductID  *uuid.UUID `json:"product_id" db:"product_id"`
	Title      string     `json:"title" db:"title"`
	UnitPrice  float64    `json:"unit_price" db:"unit_price"`
	Quantity   int        `json:"quantity" db:"quantity"`
	TotalPrice float64    `json:"total_price" db:"total_price"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (OrderItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID REFERENCES products(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		unit_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		quantity INT NOT NULL DEFAULT 1,
		total_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);`
}
