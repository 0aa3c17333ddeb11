package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAndMerge(t *testing.T) {
	store := NewCartStore()
	productID := uuid.New()

	require.NoError(t, store.Add("sess", productID, 1))
	require.NoError(t, store.Add("sess", productID, 2))

	items := store.Items("sess")
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartRejectsNonPositiveQuantity(t *testing.T) {
	store := NewCartStore()
	assert.Error(t, store.Add("sess", uuid.New(), 0))
	assert.Error(t, store.Add("sess", uuid.New(), -1))
	assert.Empty(t, store.Items("sess"))
}

func TestCartSetQuantity(t *testing.T) {
	store := NewCartStore()
	productID := uuid.New()
	require.NoError(t, store.Add("sess", productID, 2))

	require.NoError(t, store.SetQuantity("sess", productID, 5))
	assert.Equal(t, 5, store.Items("sess")[0].Quantity)

	// Zero removes the item
	require.NoError(t, store.SetQuantity("sess", productID, 0))
	assert.Empty(t, store.Items("sess"))

	assert.Error(t, store.SetQuantity("sess", productID, 1))
	assert.Error(t, store.SetQuantity("other", productID, 1))
}

func TestCartRemoveAndClear(t *testing.T) {
	store := NewCartStore()
	first := uuid.New()
	second := uuid.New()
	require.NoError(t, store.Add("sess", first, 1))
	require.NoError(t, store.Add("sess", second, 1))

	store.Remove("sess", first)
	items := store.Items("sess")
	require.Len(t, items, 1)
	assert.Equal(t, second, items[0].ProductID)

	store.Clear("sess")
	assert.Empty(t, store.Items("sess"))

	// Removing from a missing cart is a no-op
	store.Remove("ghost", first)
}

func TestCartsAreSessionScoped(t *testing.T) {
	store := NewCartStore()
	require.NoError(t, store.Add("a", uuid.New(), 1))
	require.NoError(t, store.Add("b", uuid.New(), 2))

	assert.Len(t, store.Items("a"), 1)
	assert.Len(t, store.Items("b"), 1)
	assert.Empty(t, store.Items("c"))
}

func TestCartItemsReturnsCopy(t *testing.T) {
	store := NewCartStore()
	productID := uuid.New()
	require.NoError(t, store.Add("sess", productID, 1))

	items := store.Items("sess")
	items[0].Quantity = 99

	assert.Equal(t, 1, store.Items("sess")[0].Quantity)
}

func TestCartPruneIdle(t *testing.T) {
	store := NewCartStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return now }

	require.NoError(t, store.Add("old", uuid.New(), 1))

	now = now.Add(25 * time.Hour)
	require.NoError(t, store.Add("fresh", uuid.New(), 1))

	pruned := store.PruneIdle(24 * time.Hour)
	assert.Equal(t, 1, pruned)
	assert.Empty(t, store.Items("old"))
	assert.Len(t, store.Items("fresh"), 1)
}
