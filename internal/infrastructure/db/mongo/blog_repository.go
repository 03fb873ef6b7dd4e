package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

// BlogRepository implements ports.BlogRepository on the blogs collection.
type BlogRepository struct {
	store *Store
}

func NewBlogRepository(store *Store) *BlogRepository {
	return &BlogRepository{store: store}
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Author    string             `bson:"author"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (mp mongoPost) toDomain() domain.Post {
	return domain.Post{
		ID:        mp.ID.Hex(),
		Title:     mp.Title,
		Content:   mp.Content,
		Author:    mp.Author,
		CreatedAt: unixToTime(mp.CreatedAt),
		UpdatedAt: unixToTime(mp.UpdatedAt),
	}
}

func (r *BlogRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	id, err := r.store.Insert(ctx, collectionBlogs, mongoPost{
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author,
		CreatedAt: post.CreatedAt.Unix(),
		UpdatedAt: post.UpdatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.ID = id
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var mp mongoPost
	found, err := r.store.FindByID(ctx, collectionBlogs, id, &mp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrPostNotFound
	}
	p := mp.toDomain()
	return &p, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Post, error) {
	docs, err := decodeAll[mongoPost](r.store.FindMany(ctx, collectionBlogs, bson.M{}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *BlogRepository) Update(ctx context.Context, id, title, content string) error {
	return r.store.UpdateFields(ctx, collectionBlogs, id, bson.M{
		"title":      title,
		"content":    content,
		"updated_at": time.Now().UTC().Unix(),
	})
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteOne(ctx, collectionBlogs, id)
}
