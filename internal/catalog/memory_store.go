package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/Bingusala/rosy-glow/internal/inventory"
)

// MemoryStore implements Store and inventory.Ledger with in-memory storage.
// The mutex serializes the check-and-decrement in Reserve, so two concurrent
// reservations for the last unit cannot both succeed.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]*domain.Product),
	}
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *MemoryStore) SaveProduct(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *product
	copied.UpdatedAt = time.Now()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = copied.UpdatedAt
	}
	s.products[copied.ID] = &copied
	return nil
}

// Reserve implements inventory.Ledger. Check and decrement happen under one
// lock; on failure the counter is untouched.
func (s *MemoryStore) Reserve(_ context.Context, productID int64, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[productID]
	if !exists {
		return inventory.ErrProductNotFound
	}
	if product.StockQuantity < quantity {
		return inventory.ErrInsufficientStock
	}

	product.StockQuantity -= quantity
	product.UpdatedAt = time.Now()
	return nil
}

// Release implements inventory.Ledger.
func (s *MemoryStore) Release(_ context.Context, productID int64, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[productID]
	if !exists {
		return inventory.ErrProductNotFound
	}

	product.StockQuantity += quantity
	product.UpdatedAt = time.Now()
	return nil
}
