package ports

import (
	"context"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	// Update sets title and content. A missing id is not an error.
	Update(ctx context.Context, id, title, content string) error
	// Delete removes the post. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}
