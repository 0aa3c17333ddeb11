package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Deleting a sold product must clear the order item's reference instead of
// failing the delete; the item keeps its title/price snapshot.
func TestOrderItemProductReferenceSurvivesDeletion(t *testing.T) {
	ddl := OrderItem{}.CreateTableSQL()

	assert.Contains(t, ddl, "product_id UUID REFERENCES products(id) ON DELETE SET NULL")
	assert.NotContains(t, ddl, "product_id UUID NOT NULL")
}
