package queue

import (
	"github.com/storerating/store-rating/internal/core/domain"
)

// Discard is the publisher used when no audit store is configured.
type Discard struct{}

func (Discard) Publish(domain.RatingEvent) {}
