package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a single line in a user's cart. UnitPrice is captured when the
// product is first added; Subtotal is recomputed on every quantity change.
type CartItem struct {
	ID          string          `json:"id"`
	CartID      string          `json:"cart_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	AddedAt     time.Time       `json:"added_at"`
}

// Cart holds the items a user is assembling before checkout. There is at most
// one cart per user. TotalAmount is derived from the items and never trusted
// as input.
type Cart struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemForProduct returns the line holding the given product, or nil.
func (c *Cart) ItemForProduct(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// ItemByID returns the line with the given id, or nil if the line is not part
// of this cart. Lines belonging to another user's cart are never visible here.
func (c *Cart) ItemByID(itemID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// RecalculateTotal rederives the cart total from the current lines.
func (c *Cart) RecalculateTotal() {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal)
	}
	c.TotalAmount = total
}
