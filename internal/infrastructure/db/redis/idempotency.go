package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storerating/store-rating/internal/core/domain"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers rating submission outcomes in Redis.
// Key format: idem:rating:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the stored outcome for scope/key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, scope, key string) (domain.RatingOutcome, bool, error) {
	v, err := s.client.Get(ctx, idempotencyKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return domain.RatingOutcome(v), true, nil
}

// Remember stores outcome under scope/key. The first writer wins.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key string, outcome domain.RatingOutcome, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	if err := s.client.SetNX(ctx, idempotencyKey(scope, key), string(outcome), ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idem:rating:%s:%s", scope, key)
}
