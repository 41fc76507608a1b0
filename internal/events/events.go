package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/google/uuid"
)

type OrderItemPayload struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderCreatedEvent struct {
	EventID     string             `json:"event_id"`
	OrderID     string             `json:"order_id"`
	UserID      int64              `json:"user_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	Items       []OrderItemPayload `json:"items"`
	Timestamp   time.Time          `json:"timestamp"`
}

type OrderStatusChangedEvent struct {
	EventID        string    `json:"event_id"`
	OrderID        string    `json:"order_id"`
	UserID         int64     `json:"user_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

func newOrderCreatedEvent(order *domain.Order) OrderCreatedEvent {
	event := OrderCreatedEvent{
		EventID:     uuid.NewString(),
		OrderID:     order.ID.String(),
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		Items:       make([]OrderItemPayload, 0, len(order.Items)),
		Timestamp:   time.Now(),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, OrderItemPayload{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return event
}

func newOrderStatusChangedEvent(order *domain.Order, previous domain.OrderStatus) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		EventID:        uuid.NewString(),
		OrderID:        order.ID.String(),
		UserID:         order.UserID,
		PreviousStatus: string(previous),
		NewStatus:      string(order.Status),
		TrackingNumber: order.TrackingNumber,
		Timestamp:      time.Now(),
	}
}
