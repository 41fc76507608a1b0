package users

import (
	"context"
	"sync"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		users: make(map[int64]*domain.User),
	}
}

func (d *MemoryDirectory) GetUser(_ context.Context, id int64) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, exists := d.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (d *MemoryDirectory) PutUser(user *domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()

	copied := *user
	d.users[copied.ID] = &copied
}
