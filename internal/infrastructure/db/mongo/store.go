package mongo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/blog-site/internal/core/domain"
)

const (
	collectionUsers = "users"
	collectionBlogs = "blogs"
)

// Store issues single-document operations against named collections. Every
// record is keyed by a store-assigned ObjectID exposed to callers as hex.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// ParseID converts a hex identifier into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrMalformedID, id)
	}
	return oid, nil
}

// Insert stores record and returns the assigned identifier.
func (s *Store) Insert(ctx context.Context, collection string, record any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert %s: unexpected id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindOne decodes the first record matching filter into out. found is false
// when nothing matches.
func (s *Store) FindOne(ctx context.Context, collection string, filter any, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("find %s: %w", collection, err)
	}
	return true, nil
}

// FindByID is FindOne keyed on _id.
func (s *Store) FindByID(ctx context.Context, collection, id string, out any) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}
	return s.FindOne(ctx, collection, bson.M{"_id": oid}, out)
}

// FindMany lazily yields every record matching filter, in store order. The
// cursor is opened when iteration starts and closed when it stops. A yielded
// document is only valid until the next iteration step.
func (s *Store) FindMany(ctx context.Context, collection string, filter any) iter.Seq2[bson.Raw, error] {
	return func(yield func(bson.Raw, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()

		cur, err := s.db.Collection(collection).Find(ctx, filter)
		if err != nil {
			yield(nil, fmt.Errorf("find %s: %w", collection, err))
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			if !yield(cur.Current, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate %s: %w", collection, err))
		}
	}
}

// UpdateFields merges fields into the record with the given id. Nothing
// happens when the id matches no record.
func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields bson.M) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}); err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	return nil
}

// DeleteOne removes the record with the given id, if any.
func (s *Store) DeleteOne(ctx context.Context, collection, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete %s: %w", collection, err)
	}
	return nil
}

// Count returns the number of records matching filter.
func (s *Store) Count(ctx context.Context, collection string, filter any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Ping checks both the client connection and that the database answers
// commands.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, nil); err != nil {
		return err
	}
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the indexes the application relies on. The unique
// username index backs the "usernames are unique" rule under concurrent
// registrations.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(collectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = s.db.Collection(collectionBlogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("blogs indexes: %w", err)
	}
	return nil
}

// decodeAll drains seq into a slice of T.
func decodeAll[T any](seq iter.Seq2[bson.Raw, error]) ([]T, error) {
	var out []T
	for raw, err := range seq {
		if err != nil {
			return nil, err
		}
		var doc T
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
