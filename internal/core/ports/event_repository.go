package ports

import (
	"context"
	"time"

	"github.com/storerating/store-rating/internal/core/domain"
)

// AuditRepository persists rating events to the audit trail.
type AuditRepository interface {
	InsertRatingEvent(ctx context.Context, event domain.RatingEvent) error
}

// RatingEventPublisher hands committed rating changes to the audit pipeline.
// Publish must not block the caller.
type RatingEventPublisher interface {
	Publish(event domain.RatingEvent)
}

// IdempotencyStore remembers the outcome of keyed rating submissions.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (domain.RatingOutcome, bool, error)
	Remember(ctx context.Context, scope, key string, outcome domain.RatingOutcome, ttl time.Duration) error
}
