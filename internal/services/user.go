package services

import (
	"context"

	"github.com/authdemo/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Insert(ctx context.Context, user types.User) (types.User, error)
	Count(ctx context.Context) (int, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
	CompareDummy(password string)
}

// TokenIssuer issues and verifies bearer tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID int) (string, error)
	Verify(token string) (int, error)
}
