package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
)

// SubmissionGuard consumes one-time create-form tokens (Redis). Claim
// reports false when the token was already used.
type SubmissionGuard interface {
	Claim(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string) error
}

type BlogService struct {
	repo  ports.BlogRepository
	guard SubmissionGuard
	log   zerolog.Logger
}

// NewBlogService returns a BlogService. guard may be nil, in which case
// resubmitted create forms are not detected.
func NewBlogService(repo ports.BlogRepository, guard SubmissionGuard, log zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, guard: guard, log: log}
}

func (s *BlogService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BlogService) GetOwned(ctx context.Context, id, actor string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(actor) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *BlogService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	guarded := s.guard != nil && in.Token != ""
	if guarded {
		fresh, err := s.guard.Claim(ctx, in.Token)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("author", in.Author).Msg("submission guard failed, creating anyway")
		case !fresh:
			s.log.Debug().Str("author", in.Author).Msg("duplicate submission skipped")
			return nil, domain.ErrDuplicatePost
		}
	}

	now := time.Now().UTC()
	post, err := s.repo.Create(ctx, &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if guarded {
			if relErr := s.guard.Release(ctx, in.Token); relErr != nil {
				s.log.Warn().Err(relErr).Str("author", in.Author).Msg("failed to release submission key")
			}
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("author", post.Author).Msg("post created")
	return post, nil
}

// Update edits a post on behalf of in.Actor. A missing post yields
// ErrPostNotFound and a post by someone else yields ErrForbidden; neither
// modifies the store.
func (s *BlogService) Update(ctx context.Context, in ports.UpdatePostInput) error {
	if _, err := s.GetOwned(ctx, in.ID, in.Actor); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, in.ID, in.Title, in.Content); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (s *BlogService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.GetOwned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.log.Info().Str("post_id", id).Str("author", actor).Msg("post deleted")
	return nil
}
