package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a manually settled payment channel. Instructions hold the
// text shown to the buyer after checkout (bank details, wallet address, etc).
type PaymentMethod struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Label        string    `json:"label" db:"label"`
	Instructions string    `json:"instructions" db:"instructions"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

func (PaymentMethod) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS payment_methods (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		label TEXT NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
