package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables() error {
	// Enable pgcrypto extension
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`); err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	// Define the order of table creation (respecting foreign key dependencies)
	tables := []interface{}{
		models.Category{},
		models.Product{},
		models.User{},
		models.PaymentMethod{},
		models.Order{},
		models.OrderItem{},
		models.Visitor{},
	}

	for _, model := range tables {
		if tableModel, ok := model.(interface {
			TableName() string
			CreateTableSQL() string
		}); ok {
			tableName := tableModel.TableName()
			createSQL := tableModel.CreateTableSQL()

			log.Printf("Creating table: %s", tableName)
			if _, err := db.Exec(createSQL); err != nil {
				return fmt.Errorf("failed to create table %s: %w", tableName, err)
			}
		}
	}

	// Run schema migrations
	if err := db.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("All tables created successfully!")
	return nil
}

// runMigrations handles schema updates for existing tables and seed data
func (db *DB) runMigrations() error {
	migrations := []string{
		// Older deployments may miss the delivery-link columns
		`ALTER TABLE products ADD COLUMN IF NOT EXISTS file_url TEXT;`,
		`ALTER TABLE products ADD COLUMN IF NOT EXISTS external_link TEXT;`,
		`ALTER TABLE products ADD COLUMN IF NOT EXISTS file_type TEXT;`,
		`ALTER TABLE products ADD COLUMN IF NOT EXISTS file_size TEXT;`,

		// Visitor table recency index (older DBs were missing it)
		`CREATE INDEX IF NOT EXISTS idx_visitors_last_active ON visitors(last_active);`,

		// Order items must survive product deletion: relax the product
		// reference so deleting a sold product clears it instead of failing
		`ALTER TABLE order_items ALTER COLUMN product_id DROP NOT NULL;`,
		`ALTER TABLE order_items DROP CONSTRAINT IF EXISTS order_items_product_id_fkey;`,
		`ALTER TABLE order_items ADD CONSTRAINT order_items_product_id_fkey
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL;`,

		// Seed the storefront category set
		`INSERT INTO categories (name, slug) VALUES
			('Templates', 'templates'),
			('UI Kits', 'ui-kits'),
			('Icons', 'icons'),
			('Scripts', 'scripts'),
			('Plugins', 'plugins'),
			('Courses', 'courses')
		ON CONFLICT (name) DO NOTHING;`,

		// Seed a default manual payment method
		`INSERT INTO payment_methods (name, label, instructions, is_active)
		 VALUES ('bank-transfer', 'Bank Transfer',
		         'Transfer the order total to the account shown in your confirmation email and reply with the reference number.',
		         true)
		 ON CONFLICT (name) DO NOTHING;`,
	}

	for i, migration := range migrations {
		log.Printf("Running migration %d", i+1)
		if _, err := db.Exec(migration); err != nil {
			log.Printf("Warning: Migration %d failed: %v", i+1, err)
			// Continue with other migrations even if one fails
		}
	}

	log.Println("Migrations completed!")
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
