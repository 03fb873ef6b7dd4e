package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionTTL = time.Hour

// SubmissionGuard records which create-form tokens have been used, so that a
// resubmitted form does not create the same post twice. Each rendered form
// carries a fresh token; posting the same content from a new form is always
// allowed.
// Key format: dedup:form:<token>
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client, ttl: submissionTTL}
}

// Claim consumes token and reports whether this was its first use.
func (g *SubmissionGuard) Claim(ctx context.Context, token string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(token), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission claim: %w", err)
	}
	return ok, nil
}

// Release makes token usable again, used when the insert it guarded failed.
func (g *SubmissionGuard) Release(ctx context.Context, token string) error {
	return g.client.Del(ctx, g.key(token)).Err()
}

func (g *SubmissionGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

func (g *SubmissionGuard) key(token string) string {
	return "dedup:form:" + token
}
