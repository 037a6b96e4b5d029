package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// SubmitRatingInput is the DTO passed from the transport layer to RatingService.
type SubmitRatingInput struct {
	StoreID        uint
	UserEmail      string
	Rating         int
	IdempotencyKey string // optional
}

// RatingResult reports what a submission did.
type RatingResult struct {
	Outcome domain.RatingOutcome
	// Replayed is true when the Idempotency-Key matched an earlier submission.
	Replayed bool
}

type RatingService interface {
	Submit(ctx context.Context, in SubmitRatingInput) (*RatingResult, error)
}
