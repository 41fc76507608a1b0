package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[uuid.UUID]*domain.Order),
	}
}

func (r *MemoryRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, order *domain.Order, previous domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[order.ID]
	if !exists {
		return ErrOrderNotFound
	}
	if stored.Status != previous {
		return ErrStaleStatus
	}
	stored.Status = order.Status
	stored.TrackingNumber = order.TrackingNumber
	stored.UpdatedAt = order.UpdatedAt
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[id]; !exists {
		return ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64, page Page) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filter(func(o *domain.Order) bool { return o.UserID == userID })
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *MemoryRepository) ListByStatus(_ context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(o *domain.Order) bool { return o.Status == status }), nil
}

func (r *MemoryRepository) ListAll(_ context.Context, page Page) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filter(func(o *domain.Order) bool { return true })
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *MemoryRepository) filter(keep func(*domain.Order) bool) []*domain.Order {
	var matched []*domain.Order
	for _, order := range r.orders {
		if keep(order) {
			copied := *order
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func paginate(orders []*domain.Order, page Page) []*domain.Order {
	offset := page.Offset()
	if offset >= len(orders) {
		return nil
	}
	end := offset + page.Limit()
	if end > len(orders) {
		end = len(orders)
	}
	return orders[offset:end]
}
