package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/Bingusala/rosy-glow/internal/inventory"
	"github.com/Bingusala/rosy-glow/internal/orders"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartStore is what the orchestrator needs from the cart side.
type CartStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) error
}

// OrderStore persists orders. Delete exists only for compensation when a
// later checkout step fails after the order row was written. UpdateStatus is
// conditional on the stored status still being previous, reporting
// orders.ErrStaleStatus when another writer got there first.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher emits order life cycle events. Publishing is best-effort and
// never fails a checkout.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}

type Service struct {
	carts  CartStore
	ledger inventory.Ledger
	orders OrderStore
	events EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

func NewService(carts CartStore, ledger inventory.Ledger, orders OrderStore, events EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		carts:  carts,
		ledger: ledger,
		orders: orders,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// CreateOrder turns the user's cart into an order as one logical transaction:
// reserve stock for every line, persist the order, clear the cart. Any
// mid-sequence failure compensates everything already done, so there is no
// state where stock is debited but no order exists.
func (s *Service) CreateOrder(ctx context.Context, userID int64, shippingAddress string) (*domain.Order, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	reserved, err := s.reserveAll(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	order, err := BuildOrder(cart, shippingAddress, s.now())
	if err != nil {
		s.releaseAll(ctx, reserved)
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseAll(ctx, reserved)
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// order row is already written, undo it along with the stock
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.logger.Error("failed to delete order during rollback",
				zap.String("order_id", order.ID.String()), zap.Error(delErr))
		}
		s.releaseAll(ctx, reserved)
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if pubErr := s.events.OrderCreated(ctx, order); pubErr != nil {
		s.logger.Warn("failed to publish order created event",
			zap.String("order_id", order.ID.String()), zap.Error(pubErr))
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.Int64("user_id", userID),
		zap.String("total_amount", order.TotalAmount.String()))

	return order, nil
}

// reserveAll attempts every reservation; if one fails, all previously granted
// reservations in this call are released so the operation stays
// all-or-nothing across the lines.
func (s *Service) reserveAll(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	reserved := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if err := s.ledger.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
			s.releaseAll(ctx, reserved)
			return nil, fmt.Errorf("reserve product %d: %w", item.ProductID, err)
		}
		reserved = append(reserved, item)
	}
	return reserved, nil
}

func (s *Service) releaseAll(ctx context.Context, reserved []domain.CartItem) {
	for _, item := range reserved {
		if err := s.ledger.Release(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("failed to release reserved stock",
				zap.Int64("product_id", item.ProductID),
				zap.Int32("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

// UpdateStatus performs a validated status transition. It never re-touches
// inventory. The tracking number is attached as-is; it only carries meaning
// once the order is SHIPPED.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionTo(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, newStatus)
	}

	previous := order.Status
	order.Status = newStatus
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	order.UpdatedAt = s.now()

	// The store re-checks previous; a concurrent writer that moved the order
	// between our read and this write makes the transition illegal, it is
	// never applied on top of the newer status.
	if err := s.orders.UpdateStatus(ctx, order, previous); err != nil {
		if errors.Is(err, orders.ErrStaleStatus) {
			current, readErr := s.orders.GetByID(ctx, orderID)
			if readErr != nil {
				return nil, readErr
			}
			return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, newStatus)
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if pubErr := s.events.OrderStatusChanged(ctx, order, previous); pubErr != nil {
		s.logger.Warn("failed to publish status changed event",
			zap.String("order_id", order.ID.String()), zap.Error(pubErr))
	}

	return order, nil
}
