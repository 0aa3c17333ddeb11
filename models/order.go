package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID `json:"id" db:"id"`
	OrderNumber     string    `json:"order_number" db:"order_number"`
	Email           string    `json:"email" db:"email"`
	PaymentMethodID uuid.UUID `json:"payment_method_id" db:"payment_method_id"`
	Status          string    `json:"status" db:"status"`
	Total           float64   `json:"total" db:"total"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (Order) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_number TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		payment_method_id UUID REFERENCES payment_methods(id),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		total NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);`
}
