package catalog

import (
	"context"
	"errors"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Store is the read side of the catalog collaborator. The cart store uses it
// for price capture and the advisory stock pre-check; the authoritative stock
// check happens through the inventory ledger.
type Store interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SaveProduct(ctx context.Context, product *domain.Product) error
}
