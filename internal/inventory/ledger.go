package inventory

import (
	"context"
	"errors"
)

// Common errors returned by ledger implementations
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
)

// Ledger owns the per-product available stock counter. Reserve is the one
// authoritative check: it must verify availability and decrement as a single
// atomic step with respect to concurrent reservations against the same
// product. Release is the compensating increment used when a later checkout
// step fails after a reservation was granted.
//
// Consumers define this interface; the catalog stores implement it at the
// storage boundary, where the conditional decrement can actually be atomic.
type Ledger interface {
	// Reserve atomically checks available >= quantity and decrements.
	// Returns ErrInsufficientStock without touching the counter otherwise.
	Reserve(ctx context.Context, productID int64, quantity int32) error

	// Release returns previously reserved stock to the available pool.
	Release(ctx context.Context, productID int64, quantity int32) error
}
