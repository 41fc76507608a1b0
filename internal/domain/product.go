package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is owned by the catalog. The rest of the system reads its price
// and stock; only the inventory ledger may write the stock field.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int32
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
