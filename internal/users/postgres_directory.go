package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, email, active FROM users WHERE id = $1`

	var user domain.User
	err := d.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by id: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		user.Roles = append(user.Roles, domain.Role(role))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("role row iteration error: %w", err)
	}

	return &user, nil
}
