package users

import (
	"context"
	"errors"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// Directory is the user collaborator boundary. The core only reads users for
// existence and role checks; it never mutates them.
type Directory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}
