package ports

import (
	"context"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// CreatePostInput carries the fields of a new post. Author is taken from the
// session, never from the form. Token is the one-time token issued with the
// create form; an empty token skips the resubmission check.
type CreatePostInput struct {
	Author  string
	Title   string
	Content string
	Token   string
}

// UpdatePostInput carries an edit request on behalf of Actor.
type UpdatePostInput struct {
	ID      string
	Actor   string
	Title   string
	Content string
}

// BlogService defines use-case operations for blog posts.
type BlogService interface {
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	// GetOwned returns the post only when actor is its author.
	GetOwned(ctx context.Context, id, actor string) (*domain.Post, error)
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, input UpdatePostInput) error
	Delete(ctx context.Context, id, actor string) error
}
