package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storerating/store-rating/internal/core/domain"
)

// RatingRepository writes ratings and keeps store_owners.rating /
// store_owners.count_rating consistent with the ratings table.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Submit locks the store row, then inserts or replaces the caller's rating
// and applies the delta to the aggregate in one transaction.
func (r *RatingRepository) Submit(ctx context.Context, storeID uint, userEmail string, value int) (*domain.RatingChange, error) {
	var change *domain.RatingChange

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store domain.StoreOwner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "store_name").
			Take(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrStoreNotFound
			}
			return err
		}

		c := &domain.RatingChange{
			StoreID:   store.ID,
			StoreName: store.StoreName,
			UserEmail: userEmail,
			Rating:    value,
		}

		var existing domain.Rating
		err := tx.Where("store_id = ? AND user_email = ?", storeID, userEmail).Take(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Update("rating", value).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.StoreOwner{}).
				Where("id = ?", storeID).
				Update("rating", gorm.Expr("rating + ?", value-existing.Rating)).Error; err != nil {
				return err
			}
			c.PreviousRating = existing.Rating
			c.Outcome = domain.RatingUpdated

		case errors.Is(err, gorm.ErrRecordNotFound):
			row := domain.Rating{StoreID: storeID, UserEmail: userEmail, Rating: value}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.StoreOwner{}).
				Where("id = ?", storeID).
				Updates(map[string]any{
					"rating":       gorm.Expr("rating + ?", value),
					"count_rating": gorm.Expr("count_rating + 1"),
				}).Error; err != nil {
				return err
			}
			c.Outcome = domain.RatingCreated

		default:
			return err
		}

		change = c
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, domain.ErrDuplicateRating
		case domain.KindOf(err) != 0:
			return nil, err
		default:
			return nil, fmt.Errorf("submit rating: %w", err)
		}
	}
	return change, nil
}

func (r *RatingRepository) FindByStoreName(ctx context.Context, storeName string) (*domain.StoreOwner, error) {
	var store domain.StoreOwner
	err := r.db.WithContext(ctx).Where("store_name = ?", storeName).Take(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return &store, nil
}

type storeSummaryRow struct {
	ID          uint
	StoreName   string
	Address     string
	RatingSum   int64 `gorm:"column:rating"`
	RatingCount int64 `gorm:"column:count_rating"`
	UserRating  *int  `gorm:"column:user_rating"`
}

func (r *RatingRepository) ListStoreSummaries(ctx context.Context, userEmail string) ([]domain.StoreSummary, error) {
	var rows []storeSummaryRow
	err := r.db.WithContext(ctx).
		Table("store_owners AS so").
		Select("so.id, so.store_name, so.address, so.rating, so.count_rating, r.rating AS user_rating").
		Joins("LEFT JOIN ratings r ON r.store_id = so.id AND r.user_email = ?", userEmail).
		Order("so.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list store summaries: %w", err)
	}

	out := make([]domain.StoreSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StoreSummary{
			ID:          row.ID,
			StoreName:   row.StoreName,
			Address:     row.Address,
			RatingSum:   row.RatingSum,
			RatingCount: row.RatingCount,
			UserRating:  row.UserRating,
		})
	}
	return out, nil
}

func (r *RatingRepository) ListReviews(ctx context.Context, storeID uint) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("user_email", "rating").
		Where("store_id = ?", storeID).
		Order("id").
		Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
