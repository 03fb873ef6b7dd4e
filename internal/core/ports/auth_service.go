package ports

import (
	"context"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}

type AuthService interface {
	// Register creates an account. The first account registered while no
	// admin exists receives RoleAdmin; every other account receives RoleUser.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
}
