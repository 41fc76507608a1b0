package orders

import (
	"context"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/google/uuid"
)

// UserReader is the slice of the user directory the read side needs for
// ownership and role checks.
type UserReader interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// OrderPage is one page of results plus the pass-through paging parameters.
type OrderPage struct {
	Orders []*domain.Order
	Number int
	Size   int
	Total  int64
}

// QueryService is the read side for orders: no side effects, pagination
// passed through to the repository.
type QueryService struct {
	repo  OrderRepository
	users UserReader
}

func NewQueryService(repo OrderRepository, users UserReader) *QueryService {
	return &QueryService{repo: repo, users: users}
}

func (s *QueryService) ByUser(ctx context.Context, userID int64, page Page) (*OrderPage, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	orders, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Number: page.Number, Size: page.Limit(), Total: total}, nil
}

// ByID returns the order only when the requester owns it or holds the admin
// role.
func (s *QueryService) ByID(ctx context.Context, orderID uuid.UUID, requesterID int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID == requesterID {
		return order, nil
	}

	requester, err := s.users.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *QueryService) ByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *QueryService) All(ctx context.Context, page Page) (*OrderPage, error) {
	orders, total, err := s.repo.ListAll(ctx, page)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Number: page.Number, Size: page.Limit(), Total: total}, nil
}
