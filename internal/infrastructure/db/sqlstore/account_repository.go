package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storerating/store-rating/internal/core/domain"
)

// accountModel ties a row type to its pointer, which carries the
// domain.Account methods.
type accountModel[T any] interface {
	*T
	domain.Account
}

// AccountRepository stores one account kind in its own table. notFound is the
// sentinel returned for a missing email (domain.ErrUserNotFound etc).
type AccountRepository[T any, PT accountModel[T]] struct {
	db       *gorm.DB
	notFound error
}

func NewAccountRepository[T any, PT accountModel[T]](db *gorm.DB, notFound error) *AccountRepository[T, PT] {
	return &AccountRepository[T, PT]{db: db, notFound: notFound}
}

func (r *AccountRepository[T, PT]) Create(ctx context.Context, acct *T) error {
	if err := r.db.WithContext(ctx).Create(acct).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepository[T, PT]) FindByEmail(ctx context.Context, email string) (*T, error) {
	var acct T
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &acct, nil
}

func (r *AccountRepository[T, PT]) FindCredential(ctx context.Context, email string) (*domain.Credential, error) {
	acct, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c := PT(acct).Credential()
	return &c, nil
}

// Update replaces the profile of the account under a row lock so that a
// concurrent rating aggregate write on the same row is not lost.
func (r *AccountRepository[T, PT]) Update(ctx context.Context, email string, p domain.ProfileUpdate) (*T, error) {
	var acct T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", email).
			Take(&acct).Error; err != nil {
			return err
		}
		PT(&acct).ApplyProfile(p)
		return tx.Save(&acct).Error
	})
	switch {
	case err == nil:
		return &acct, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, r.notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, domain.ErrDuplicateAccount
	default:
		return nil, fmt.Errorf("update account: %w", err)
	}
}

func (r *AccountRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}
