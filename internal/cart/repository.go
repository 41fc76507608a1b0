package cart

import (
	"context"
	"errors"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	// GetByUserID returns the user's cart or ErrCartNotFound.
	GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error)

	// Save upserts the full cart state keyed by user id. A unique index on
	// the user key enforces at most one cart per user.
	Save(ctx context.Context, cart *domain.Cart) error
}
