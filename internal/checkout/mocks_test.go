package checkout

import (
	"context"
	"sync"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/Bingusala/rosy-glow/internal/inventory"
	"github.com/Bingusala/rosy-glow/internal/orders"
	"github.com/google/uuid"
)

// MockCartStore implements CartStore for testing
type MockCartStore struct {
	Cart       *domain.Cart
	GetErr     error
	ClearErr   error
	ClearCalls int
}

func (m *MockCartStore) GetOrCreate(_ context.Context, _ int64) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Cart, nil
}

func (m *MockCartStore) Clear(_ context.Context, _ int64) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.ClearCalls++
	m.Cart = &domain.Cart{ID: m.Cart.ID, UserID: m.Cart.UserID}
	return nil
}

// MockLedger implements inventory.Ledger with per-product counters and a
// configurable product that always fails to reserve.
type MockLedger struct {
	mu          sync.Mutex
	Stock       map[int64]int32
	FailProduct int64 // reservations for this product fail with ErrInsufficientStock
}

func NewMockLedger(stock map[int64]int32) *MockLedger {
	return &MockLedger{Stock: stock}
}

func (m *MockLedger) Reserve(_ context.Context, productID int64, quantity int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if productID == m.FailProduct {
		return inventory.ErrInsufficientStock
	}
	available, ok := m.Stock[productID]
	if !ok {
		return inventory.ErrProductNotFound
	}
	if available < quantity {
		return inventory.ErrInsufficientStock
	}
	m.Stock[productID] = available - quantity
	return nil
}

func (m *MockLedger) Release(_ context.Context, productID int64, quantity int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stock[productID] += quantity
	return nil
}

// MockOrderStore implements OrderStore for testing. AfterGet, when set, runs
// after every GetByID so tests can move the stored order between the
// service's read and its conditional write.
type MockOrderStore struct {
	Orders      map[uuid.UUID]*domain.Order
	CreateErr   error
	DeleteCalls int
	AfterGet    func(*MockOrderStore)
}

func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{Orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *MockOrderStore) Create(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Orders[order.ID] = order
	return nil
}

func (m *MockOrderStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := m.Orders[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	copied := *order
	if m.AfterGet != nil {
		hook := m.AfterGet
		m.AfterGet = nil
		hook(m)
	}
	return &copied, nil
}

func (m *MockOrderStore) UpdateStatus(_ context.Context, order *domain.Order, previous domain.OrderStatus) error {
	stored, ok := m.Orders[order.ID]
	if !ok {
		return orders.ErrOrderNotFound
	}
	if stored.Status != previous {
		return orders.ErrStaleStatus
	}
	copied := *order
	m.Orders[order.ID] = &copied
	return nil
}

func (m *MockOrderStore) Delete(_ context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	delete(m.Orders, id)
	return nil
}

// MockPublisher implements EventPublisher for testing
type MockPublisher struct {
	Created       []*domain.Order
	StatusChanges []*domain.Order
	Err           error
}

func (m *MockPublisher) OrderCreated(_ context.Context, order *domain.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = append(m.Created, order)
	return nil
}

func (m *MockPublisher) OrderStatusChanged(_ context.Context, order *domain.Order, _ domain.OrderStatus) error {
	if m.Err != nil {
		return m.Err
	}
	m.StatusChanges = append(m.StatusChanges, order)
	return nil
}
