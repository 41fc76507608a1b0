package cart

import (
	"context"
	"sync"
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[int64]*domain.Cart),
	}
}

func (r *MemoryRepository) GetByUserID(_ context.Context, userID int64) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (r *MemoryRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	r.carts[cart.UserID] = copyCart(cart)
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	copied := *cart
	copied.Items = make([]domain.CartItem, len(cart.Items))
	copy(copied.Items, cart.Items)
	return &copied
}
