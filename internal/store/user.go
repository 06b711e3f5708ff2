package store

import (
	"context"
	"sync"
	"time"

	"github.com/authdemo/apiserver/types"
)

// UserRepository is a process-local, append-only user table.
// Contents are lost on restart.
type UserRepository struct {
	mu    sync.RWMutex
	users []types.User
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{now: time.Now}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// IDs are dense and 1-based, so the record lives at index id-1.
	if id < 1 || id > len(r.users) {
		return types.User{}, ErrNotFound
	}
	return r.users[id-1], nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByEmail(email); i >= 0 {
		return r.users[i], nil
	}
	return types.User{}, ErrNotFound
}

// Insert appends user and assigns its ID. The duplicate check and the
// append happen under the same lock.
func (r *UserRepository) Insert(ctx context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmail(user.Email) >= 0 {
		return types.User{}, ErrDuplicateEmail
	}

	user.ID = len(r.users) + 1
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *UserRepository) indexByEmail(email string) int {
	for i := range r.users {
		if r.users[i].Email == email {
			return i
		}
	}
	return -1
}
