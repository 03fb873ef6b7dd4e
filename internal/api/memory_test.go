package api

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/blog-site/internal/core/domain"
	"github.com/sirpyerre/blog-site/internal/infrastructure/db/mongo"
)

// memoryUsers and memoryBlogs mirror the Mongo repositories' contracts in
// memory: hex ids, malformed ids rejected, updates and deletes of missing
// ids are no-ops.

type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]domain.User
	order []string
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: make(map[string]domain.User)}
}

func (r *memoryUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	created := *u
	created.ID = primitive.NewObjectID().Hex()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.byID[created.ID] = created
	r.order = append(r.order, created.ID)
	return &created, nil
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if _, err := mongo.ParseID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUsers) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.byID))
	for _, id := range r.order {
		if u, ok := r.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUsers) CountByRole(_ context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memoryUsers) Update(_ context.Context, id, username, role string) error {
	if _, err := mongo.ParseID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for otherID, u := range r.byID {
		if otherID != id && u.Username == username {
			return domain.ErrUserExists
		}
	}
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	u.Username, u.Role, u.UpdatedAt = username, role, time.Now()
	r.byID[id] = u
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id string) error {
	if _, err := mongo.ParseID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type memoryBlogs struct {
	mu    sync.Mutex
	byID  map[string]domain.Post
	order []string
}

func newMemoryBlogs() *memoryBlogs {
	return &memoryBlogs{byID: make(map[string]domain.Post)}
}

func (r *memoryBlogs) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := *p
	created.ID = primitive.NewObjectID().Hex()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.byID[created.ID] = created
	r.order = append(r.order, created.ID)
	return &created, nil
}

func (r *memoryBlogs) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if _, err := mongo.ParseID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

func (r *memoryBlogs) List(_ context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Post, 0, len(r.byID))
	for _, id := range r.order {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryBlogs) Update(_ context.Context, id, title, content string) error {
	if _, err := mongo.ParseID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil
	}
	p.Title, p.Content, p.UpdatedAt = title, content, time.Now()
	r.byID[id] = p
	return nil
}

func (r *memoryBlogs) Delete(_ context.Context, id string) error {
	if _, err := mongo.ParseID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memoryBlogs) Ping(context.Context) error { return nil }

// memoryGuard consumes form tokens like the Redis guard does.
type memoryGuard struct {
	mu   sync.Mutex
	used map[string]bool
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{used: make(map[string]bool)}
}

func (g *memoryGuard) Claim(_ context.Context, token string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.used[token] {
		return false, nil
	}
	g.used[token] = true
	return true, nil
}

func (g *memoryGuard) Release(_ context.Context, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.used, token)
	return nil
}
