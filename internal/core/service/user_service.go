package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/core/ports"
)

// UserService backs the admin panel.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update sets username and role. Existing sessions of the account keep their
// old identity until they log in again.
func (s *UserService) Update(ctx context.Context, id, username, role string) error {
	if username == "" {
		return domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if err := s.repo.Update(ctx, id, username, role); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("username", username).Str("role", role).Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
