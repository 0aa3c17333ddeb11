package handlers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^NEX-\d+(-[0-9A-F]{6})?$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := generateOrderNumber()
		assert.Regexp(t, pattern, number)
		seen[number] = true
	}
	// The random suffix keeps numbers generated in the same second distinct
	assert.Greater(t, len(seen), 1)
}
