package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

type DashboardService struct {
	users       ports.AccountRepository[domain.User]
	admins      ports.AccountRepository[domain.Admin]
	storeOwners ports.AccountRepository[domain.StoreOwner]
	stores      ports.StoreLookup
	ratings     ports.RatingRepository
}

func NewDashboardService(
	users ports.AccountRepository[domain.User],
	admins ports.AccountRepository[domain.Admin],
	storeOwners ports.AccountRepository[domain.StoreOwner],
	stores ports.StoreLookup,
	ratings ports.RatingRepository,
) *DashboardService {
	return &DashboardService{
		users:       users,
		admins:      admins,
		storeOwners: storeOwners,
		stores:      stores,
		ratings:     ratings,
	}
}

func (s *DashboardService) SystemOverview(ctx context.Context) (*ports.SystemOverview, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("system overview: admins: %w", err)
	}
	overview, err := s.AdminOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("system overview: %w", err)
	}
	return &ports.SystemOverview{
		Admins: admins,
		Users:  overview.Users,
		Stores: overview.Stores,
	}, nil
}

func (s *DashboardService) AdminOverview(ctx context.Context) (*ports.AdminOverview, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin overview: users: %w", err)
	}
	stores, err := s.storeOwners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin overview: stores: %w", err)
	}
	return &ports.AdminOverview{Users: users, Stores: stores}, nil
}

func (s *DashboardService) StoresForUser(ctx context.Context, userEmail string) ([]domain.StoreSummary, error) {
	stores, err := s.ratings.ListStoreSummaries(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("stores for user: %w", err)
	}
	for i := range stores {
		stores[i].AverageRating = domain.AverageRating(stores[i].RatingSum, stores[i].RatingCount)
	}
	sortByAverageDesc(stores)
	return stores, nil
}

func (s *DashboardService) StoreReviews(ctx context.Context, storeName string) ([]domain.Review, error) {
	if storeName == "" {
		return nil, domain.ErrInvalidInput
	}
	store, err := s.stores.FindByStoreName(ctx, storeName)
	if err != nil {
		return nil, err
	}
	reviews, err := s.ratings.ListReviews(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("store reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// sortByAverageDesc orders by average rating descending, unrated stores last,
// ties broken by id.
func sortByAverageDesc(stores []domain.StoreSummary) {
	sort.SliceStable(stores, func(i, j int) bool {
		a, b := stores[i].AverageRating, stores[j].AverageRating
		switch {
		case a == nil && b == nil:
			return stores[i].ID < stores[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return stores[i].ID < stores[j].ID
		}
	})
}
