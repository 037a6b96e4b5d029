package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// NewAccountInput carries the fields for creating any account kind.
// StoreName applies to store owners, Title to admins.
type NewAccountInput struct {
	Name      string
	Email     string
	Address   string
	Password  string
	StoreName string
	Title     string
}

// ProfileInput carries a profile replacement. Empty Password keeps the
// current one.
type ProfileInput struct {
	Name      string
	Address   string
	Password  string
	StoreName string
}

// AccountService defines account creation, lookup and profile updates.
type AccountService interface {
	RegisterUser(ctx context.Context, in NewAccountInput) (*domain.User, error)
	CreateAdmin(ctx context.Context, in NewAccountInput) (*domain.Admin, error)
	CreateStoreOwner(ctx context.Context, in NewAccountInput) (*domain.StoreOwner, error)

	GetUser(ctx context.Context, email string) (*domain.User, error)
	GetAdmin(ctx context.Context, email string) (*domain.Admin, error)
	GetStoreOwner(ctx context.Context, email string) (*domain.StoreOwner, error)

	UpdateUser(ctx context.Context, email string, in ProfileInput) (*domain.User, error)
	UpdateAdmin(ctx context.Context, email string, in ProfileInput) (*domain.Admin, error)
	UpdateStoreOwner(ctx context.Context, email string, in ProfileInput) (*domain.StoreOwner, error)
}
