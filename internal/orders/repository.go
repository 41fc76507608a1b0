package orders

import (
	"context"
	"errors"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrForbidden     = errors.New("not authorized to view this order")

	// ErrStaleStatus means the order's status no longer matches the one the
	// caller validated against; the transition must be re-evaluated.
	ErrStaleStatus = errors.New("order status changed concurrently")
)

// Page is pass-through pagination consumed by the repository. Sorting is
// fixed to newest-first.
type Page struct {
	Number int
	Size   int
}

const defaultPageSize = 10

func (p Page) Limit() int {
	if p.Size <= 0 {
		return defaultPageSize
	}
	return p.Size
}

// Offset treats page numbers as 1-based; page 0 and page 1 are the same page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit()
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// UpdateStatus persists status and tracking number; all other fields are
	// frozen at creation. The write is conditional on the stored status still
	// being previous; ErrStaleStatus otherwise.
	UpdateStatus(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error

	// Delete exists only for checkout compensation; completed orders are
	// never deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	ListByUser(ctx context.Context, userID int64, page Page) ([]*domain.Order, int64, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	ListAll(ctx context.Context, page Page) ([]*domain.Order, int64, error)
}
