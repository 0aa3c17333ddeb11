package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CartItem is a product reference plus a quantity. Carts live only in memory,
// keyed by the client's session id; they are never persisted server-side.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type sessionCart struct {
	items    []CartItem
	lastUsed time.Time
}

// CartStore holds per-session carts behind a mutex-guarded map.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*sessionCart

	// Now is the clock used for timestamps. Overridable in tests.
	Now func() time.Time
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*sessionCart),
		Now:   time.Now,
	}
}

// Items returns a copy of the session's cart, oldest additions first.
func (s *CartStore) Items(sessionID string) []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return []CartItem{}
	}
	out := make([]CartItem, len(cart.items))
	copy(out, cart.items)
	return out
}

// Add puts a product in the cart, merging quantities if it is already there.
func (s *CartStore) Add(sessionID string, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &sessionCart{}
		s.carts[sessionID] = cart
	}
	cart.lastUsed = now

	for i := range cart.items {
		if cart.items[i].ProductID == productID {
			cart.items[i].Quantity += quantity
			return nil
		}
	}
	cart.items = append(cart.items, CartItem{ProductID: productID, Quantity: quantity, AddedAt: now})
	return nil
}

// SetQuantity replaces an item's quantity; zero removes the item.
func (s *CartStore) SetQuantity(sessionID string, productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return fmt.Errorf("cart is empty")
	}
	cart.lastUsed = s.Now()

	for i := range cart.items {
		if cart.items[i].ProductID == productID {
			if quantity == 0 {
				cart.items = append(cart.items[:i], cart.items[i+1:]...)
			} else {
				cart.items[i].Quantity = quantity
			}
			return nil
		}
	}
	return fmt.Errorf("product not in cart")
}

// Remove drops an item from the cart.
func (s *CartStore) Remove(sessionID string, productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return
	}
	cart.lastUsed = s.Now()
	for i := range cart.items {
		if cart.items[i].ProductID == productID {
			cart.items = append(cart.items[:i], cart.items[i+1:]...)
			return
		}
	}
}

// Clear empties the session's cart.
func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// PruneIdle drops carts untouched for longer than maxIdle and reports how
// many were removed.
func (s *CartStore) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.Now().Add(-maxIdle)
	pruned := 0
	for sessionID, cart := range s.carts {
		if cart.lastUsed.Before(cutoff) {
			delete(s.carts, sessionID)
			pruned++
		}
	}
	return pruned
}
