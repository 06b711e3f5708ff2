package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authdemo/apiserver/types"
)

func TestUserRepository_InsertAssignsSequentialIDs(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, types.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h1"})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, types.User{Name: "Bob", Email: "bob@x.com", PasswordHash: "h2"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUserRepository_InsertKeepsProvidedCreatedAt(t *testing.T) {
	repo := NewUserRepository()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	user, err := repo.Insert(context.Background(), types.User{Name: "Ann", Email: "ann@x.com", CreatedAt: created})
	require.NoError(t, err)
	assert.True(t, created.Equal(user.CreatedAt))
}

func TestUserRepository_InsertDuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, types.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, types.User{Name: "Other Ann", Email: "ann@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserRepository_GetByEmailIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, types.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	found, err := repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.Name)

	_, err = repo.GetByEmail(ctx, "ANN@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// A differently-cased email is a distinct key.
	_, err = repo.Insert(ctx, types.User{Name: "Ann Upper", Email: "ANN@x.com"})
	assert.NoError(t, err)
}

func TestUserRepository_GetByID(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	inserted, err := repo.Insert(ctx, types.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted, found)

	for _, id := range []int{0, -1, 2} {
		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound, "id %d", id)
	}
}

func TestUserRepository_ConcurrentInsertSameEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(ctx, types.User{Name: "Ann", Email: "ann@x.com"})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
