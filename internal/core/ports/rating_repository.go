package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// RatingRepository persists ratings together with the per-store aggregate.
type RatingRepository interface {
	// Submit inserts or replaces the (storeID, userEmail) rating and adjusts
	// the store's sum/count in the same transaction. Returns
	// domain.ErrStoreNotFound for an unknown store and domain.ErrDuplicateRating
	// when a concurrent first submission won the insert.
	Submit(ctx context.Context, storeID uint, userEmail string, value int) (*domain.RatingChange, error)

	// ListStoreSummaries returns every store with the given user's own rating
	// joined in (nil when the user has not rated it).
	ListStoreSummaries(ctx context.Context, userEmail string) ([]domain.StoreSummary, error)

	// ListReviews returns all ratings of one store in insertion order.
	ListReviews(ctx context.Context, storeID uint) ([]domain.Review, error)
}
