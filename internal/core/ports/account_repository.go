package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// AccountRepository persists one account kind. T is domain.User,
// domain.Admin or domain.StoreOwner.
type AccountRepository[T any] interface {
	CredentialFinder

	// Create inserts acct and fills its generated fields. Returns
	// domain.ErrDuplicateAccount when a unique key is violated.
	Create(ctx context.Context, acct *T) error
	FindByEmail(ctx context.Context, email string) (*T, error)
	// Update applies p to the row identified by email and returns the stored row.
	Update(ctx context.Context, email string, p domain.ProfileUpdate) (*T, error)
	List(ctx context.Context) ([]T, error)
}

// StoreLookup resolves stores by their unique name.
type StoreLookup interface {
	FindByStoreName(ctx context.Context, storeName string) (*domain.StoreOwner, error)
}
