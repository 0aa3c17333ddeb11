package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	Category     string    `json:"category" db:"category"`
	Image        string    `json:"image" db:"image"`
	Featured     bool      `json:"featured" db:"featured"`
	FileType     *string   `json:"file_type" db:"file_type"`
	FileSize     *string   `json:"file_size" db:"file_size"`
	FileURL      *string   `json:"file_url" db:"file_url"`
	ExternalLink *string   `json:"external_link" db:"external_link"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasDelivery reports whether the product carries a delivery mechanism
// (an uploaded file or an external link, never both).
func (p Product) HasDelivery() bool {
	return (p.FileURL != nil && *p.FileURL != "") || (p.ExternalLink != nil && *p.ExternalLink != "")
}

func (Product) TableName() string {
	return "products"
}

func (Product) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		category TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		featured BOOLEAN DEFAULT FALSE,
		file_type TEXT,
		file_size TEXT,
		file_url TEXT,
		external_link TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		CHECK (file_url IS NULL OR external_link IS NULL)
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	CREATE INDEX IF NOT EXISTS idx_products_featured ON products(featured);`
}
