package ports

import (
	"context"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	// Update sets username and role. A missing id is not an error.
	Update(ctx context.Context, id, username, role string) error
	// Delete removes the account. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}
