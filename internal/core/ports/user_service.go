package ports

import (
	"context"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// UserService defines the admin account-management operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id, username, role string) error
	Delete(ctx context.Context, id string) error
}
