package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

const ratingEventsCollection = "rating_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureIndexes creates the lookup indexes on the audit collection. It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ratingEventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "store_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("store_id_occurred_at"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}},
			Options: options.Index().SetName("user_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure audit indexes: %w", err)
	}
	return nil
}

// InsertRatingEvent appends one committed rating change to rating_events.
func (r *AuditRepository) InsertRatingEvent(ctx context.Context, event domain.RatingEvent) error {
	_, err := r.db.Collection(ratingEventsCollection).InsertOne(ctx, ratingEventDocument(event))
	return err
}

func ratingEventDocument(event domain.RatingEvent) bson.M {
	doc := bson.M{
		"_id":         uuid.NewString(),
		"store_id":    int64(event.StoreID),
		"store_name":  event.StoreName,
		"user_email":  event.UserEmail,
		"rating":      event.Rating,
		"outcome":     string(event.Outcome),
		"occurred_at": event.OccurredAt.UTC(),
	}
	if event.Outcome == domain.RatingUpdated {
		doc["previous_rating"] = event.PreviousRating
	}
	return doc
}
