package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	order     []string
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	created.ID = primitive.NewObjectID().Hex()
	r.byID[created.ID] = created
	r.order = append(r.order, created.ID)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, domain.ErrMalformedID
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		if u, ok := r.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Update(_ context.Context, id, username, role string) error {
	if !primitive.IsValidObjectID(id) {
		return domain.ErrMalformedID
	}
	for otherID, u := range r.byID {
		if otherID != id && u.Username == username {
			return domain.ErrUserExists
		}
	}
	if u, ok := r.byID[id]; ok {
		u.Username = username
		u.Role = role
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return domain.ErrMalformedID
	}
	delete(r.byID, id)
	return nil
}

type stubBlogRepo struct {
	byID      map[string]*domain.Post
	order     []string
	createErr error
	updates   int
	deletes   int
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{byID: make(map[string]*domain.Post)}
}

func (r *stubBlogRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *post
	clone.ID = primitive.NewObjectID().Hex()
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, domain.ErrMalformedID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubBlogRepo) List(_ context.Context) ([]domain.Post, error) {
	out := make([]domain.Post, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubBlogRepo) Update(_ context.Context, id, title, content string) error {
	r.updates++
	if p, ok := r.byID[id]; ok {
		p.Title = title
		p.Content = content
	}
	return nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	r.deletes++
	delete(r.byID, id)
	return nil
}

type stubGuard struct {
	seen     map[string]bool
	claimErr error
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{seen: make(map[string]bool)}
}

func (g *stubGuard) Claim(_ context.Context, token string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.seen[token] {
		return false, nil
	}
	g.seen[token] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, token string) error {
	delete(g.seen, token)
	g.released = append(g.released, token)
	return nil
}

var errStore = errors.New("store unavailable")
