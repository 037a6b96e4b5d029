package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// SystemOverview is the system-admin dashboard.
type SystemOverview struct {
	Admins []domain.Admin
	Users  []domain.User
	Stores []domain.StoreOwner
}

// AdminOverview is the admin dashboard.
type AdminOverview struct {
	Users  []domain.User
	Stores []domain.StoreOwner
}

// DashboardService defines the per-role read views.
type DashboardService interface {
	SystemOverview(ctx context.Context) (*SystemOverview, error)
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	// StoresForUser lists stores ordered by average rating, highest first,
	// unrated stores last.
	StoresForUser(ctx context.Context, userEmail string) ([]domain.StoreSummary, error)
	// StoreReviews returns the reviews of a store; an empty slice when the
	// store exists but has none.
	StoreReviews(ctx context.Context, storeName string) ([]domain.Review, error)
}
