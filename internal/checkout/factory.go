package checkout

import (
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/google/uuid"
)

// BuildOrder converts a cart snapshot into an immutable order. Pure
// construction: no persistence, no stock mutation. Each order line copies the
// cart line's quantity, unit price and subtotal verbatim; this is the snapshot
// boundary, later product price changes never reach the order.
func BuildOrder(cart *domain.Cart, shippingAddress string, now time.Time) (*domain.Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          cart.UserID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shippingAddress,
		Items:           make([]domain.OrderItem, 0, len(cart.Items)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, line := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(line.Subtotal)
	}

	return order, nil
}
