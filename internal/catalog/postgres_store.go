package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/Bingusala/rosy-glow/internal/inventory"
)

// PostgresStore implements Store and inventory.Ledger on top of the products
// table. Reserve relies on a conditional UPDATE, so the check-and-decrement
// is atomic at the row level without an application-side lock.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, description, price, stock_quantity, active, created_at, updated_at
	          FROM products WHERE id = $1`

	var product domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.StockQuantity,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}

	return &product, nil
}

func (s *PostgresStore) SaveProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, description, price, stock_quantity, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	          ON CONFLICT (id) DO UPDATE SET
	              name = EXCLUDED.name,
	              description = EXCLUDED.description,
	              price = EXCLUDED.price,
	              stock_quantity = EXCLUDED.stock_quantity,
	              active = EXCLUDED.active,
	              updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.Active,
	)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// Reserve implements inventory.Ledger. The WHERE clause rejects the update
// when stock would go negative; zero rows affected means either missing
// product or insufficient stock, disambiguated with a follow-up read.
func (s *PostgresStore) Reserve(ctx context.Context, productID int64, quantity int32) error {
	query := `UPDATE products
	          SET stock_quantity = stock_quantity - $2, updated_at = NOW()
	          WHERE id = $1 AND stock_quantity >= $2`

	result, err := s.db.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve stock rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("check product existence: %w", err)
	}
	if !exists {
		return inventory.ErrProductNotFound
	}
	return inventory.ErrInsufficientStock
}

// Release implements inventory.Ledger.
func (s *PostgresStore) Release(ctx context.Context, productID int64, quantity int32) error {
	query := `UPDATE products
	          SET stock_quantity = stock_quantity + $2, updated_at = NOW()
	          WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("release stock rows affected: %w", err)
	}
	if affected == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}
