package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
	"github.com/storerating/store-rating/internal/pkg/metrics"
)

const defaultIdempotencyTTL = 24 * time.Hour

type ratingService struct {
	ratings        ports.RatingRepository
	users          ports.CredentialFinder
	idempotency    ports.IdempotencyStore
	events         ports.RatingEventPublisher
	idempotencyTTL time.Duration
	now            func() time.Time
	log            zerolog.Logger
}

// NewRatingService returns a RatingService implementation. idempotency may be
// nil, in which case Idempotency-Key headers are ignored.
func NewRatingService(
	ratings ports.RatingRepository,
	users ports.CredentialFinder,
	idempotency ports.IdempotencyStore,
	events ports.RatingEventPublisher,
	idempotencyTTL time.Duration,
	log zerolog.Logger,
) ports.RatingService {
	if idempotencyTTL <= 0 {
		idempotencyTTL = defaultIdempotencyTTL
	}
	return &ratingService{
		ratings:        ratings,
		users:          users,
		idempotency:    idempotency,
		events:         events,
		idempotencyTTL: idempotencyTTL,
		now:            time.Now,
		log:            log,
	}
}

// Submit validates, deduplicates, and persists a single rating.
func (s *ratingService) Submit(ctx context.Context, in ports.SubmitRatingInput) (*ports.RatingResult, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	if in.UserEmail == "" {
		return nil, domain.ErrInvalidInput
	}

	// 1. Idempotency check: replay the stored outcome.
	scope := idempotencyScope(in.UserEmail, in.StoreID)
	if in.IdempotencyKey != "" && s.idempotency != nil {
		outcome, found, err := s.idempotency.Lookup(ctx, scope, in.IdempotencyKey)
		switch {
		case err != nil:
			metrics.IdempotencyChecksTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("user_email", in.UserEmail).Msg("idempotency lookup failed, processing anyway")
		case found:
			metrics.IdempotencyChecksTotal.WithLabelValues("hit").Inc()
			metrics.RatingsSubmittedTotal.WithLabelValues("replayed").Inc()
			s.log.Debug().Str("user_email", in.UserEmail).Uint("store_id", in.StoreID).Msg("idempotent replay")
			return &ports.RatingResult{Outcome: outcome, Replayed: true}, nil
		default:
			metrics.IdempotencyChecksTotal.WithLabelValues("miss").Inc()
		}
	}

	// 2. The rater must be a registered user.
	if _, err := s.users.FindCredential(ctx, in.UserEmail); err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("submit rating: find user: %w", err)
	}

	// 3. Write rating + aggregate atomically. A lost insert race surfaces as
	// ErrDuplicateRating; the second attempt then takes the update path.
	change, err := s.ratings.Submit(ctx, in.StoreID, in.UserEmail, in.Rating)
	if errors.Is(err, domain.ErrDuplicateRating) {
		s.log.Debug().Str("user_email", in.UserEmail).Uint("store_id", in.StoreID).Msg("concurrent first rating, retrying as update")
		change, err = s.ratings.Submit(ctx, in.StoreID, in.UserEmail, in.Rating)
	}
	if err != nil {
		if domain.KindOf(err) != 0 {
			return nil, err
		}
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	// 4. Remember the key (non-fatal on failure).
	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, scope, in.IdempotencyKey, change.Outcome, s.idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("user_email", in.UserEmail).Msg("failed to store idempotency key")
		}
	}

	// 5. Audit trail (async, non-fatal).
	s.events.Publish(domain.NewRatingEvent(*change, s.now()))

	metrics.RatingsSubmittedTotal.WithLabelValues(string(change.Outcome)).Inc()
	s.log.Info().
		Uint("store_id", change.StoreID).
		Str("store_name", change.StoreName).
		Str("user_email", change.UserEmail).
		Int("rating", change.Rating).
		Str("outcome", string(change.Outcome)).
		Msg("rating processed")

	return &ports.RatingResult{Outcome: change.Outcome}, nil
}

func idempotencyScope(userEmail string, storeID uint) string {
	return userEmail + ":" + strconv.FormatUint(uint64(storeID), 10)
}
