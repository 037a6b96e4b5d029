package domain

import "time"

// RatingOutcome says whether a submission inserted or replaced a rating.
type RatingOutcome string

const (
	RatingCreated RatingOutcome = "created"
	RatingUpdated RatingOutcome = "updated"
)

// RatingChange is the committed result of a rating submission.
type RatingChange struct {
	StoreID        uint
	StoreName      string
	UserEmail      string
	Rating         int
	PreviousRating int // zero when Outcome is RatingCreated
	Outcome        RatingOutcome
}

// RatingEvent is the audit record of a committed rating change.
type RatingEvent struct {
	StoreID        uint
	StoreName      string
	UserEmail      string
	Rating         int
	PreviousRating int
	Outcome        RatingOutcome
	OccurredAt     time.Time
}

// NewRatingEvent stamps a committed change for the audit trail.
func NewRatingEvent(c RatingChange, at time.Time) RatingEvent {
	return RatingEvent{
		StoreID:        c.StoreID,
		StoreName:      c.StoreName,
		UserEmail:      c.UserEmail,
		Rating:         c.Rating,
		PreviousRating: c.PreviousRating,
		Outcome:        c.Outcome,
		OccurredAt:     at.UTC(),
	}
}
