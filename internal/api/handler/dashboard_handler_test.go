package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

func TestDashboardHandler_SuperAdmin(t *testing.T) {
	handler := NewDashboardHandler(&stubDashboardService{overview: &ports.SystemOverview{
		Admins: []domain.Admin{{Email: "queen@example.com"}},
		Users:  []domain.User{},
		Stores: []domain.StoreOwner{{StoreName: "Tea Party", RatingSum: 9, RatingCount: 2}},
	}})

	c, rec := newJSONContext(http.MethodGet, "/super-admin-dashboard", "", "root@example.com", domain.RoleSuperAdmin)
	if err := handler.SuperAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["admins"]) != 1 || len(resp["stores"]) != 1 {
		t.Fatalf("unexpected payload: %v", resp)
	}
	if resp["users"] == nil {
		t.Fatalf("users must serialize as [] not null")
	}
	if resp["stores"][0]["rating"] != float64(9) || resp["stores"][0]["count_rating"] != float64(2) {
		t.Fatalf("aggregate not exposed: %v", resp["stores"][0])
	}
}

func TestDashboardHandler_UserStores(t *testing.T) {
	avg := 4.5
	mine := 5
	handler := NewDashboardHandler(&stubDashboardService{stores: []domain.StoreSummary{
		{ID: 1, StoreName: "Tea Party", Address: "Wonderland", AverageRating: &avg, RatingCount: 2, UserRating: &mine},
		{ID: 2, StoreName: "Croquet Ground"},
	}})

	c, rec := newJSONContext(http.MethodGet, "/user-dashboard/stores/alice@example.com", "", "alice@example.com", domain.RoleUser)
	if err := handler.UserStores(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userDashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(resp.Stores))
	}
	first := resp.Stores[0]
	if first.StoreAddress != "Wonderland" || *first.AverageRating != 4.5 || *first.UserRating != 5 || first.TotalRatings != 2 {
		t.Fatalf("unexpected first store: %+v", first)
	}
	if resp.Stores[1].AverageRating != nil || resp.Stores[1].UserRating != nil {
		t.Fatalf("unrated store should carry null rating fields: %+v", resp.Stores[1])
	}
}

func TestDashboardHandler_StoreReviews(t *testing.T) {
	handler := NewDashboardHandler(&stubDashboardService{reviews: []domain.Review{}})

	c, rec := newJSONContext(http.MethodGet, "/store-owner/reviews/Tea%20Party", "", "hatter@example.com", domain.RoleStoreOwner)
	c.SetParamNames("storeName")
	c.SetParamValues("Tea Party")
	if err := handler.StoreReviews(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestDashboardHandler_StoreReviews_UnknownStore(t *testing.T) {
	handler := NewDashboardHandler(&stubDashboardService{err: domain.ErrStoreNotFound})

	c, _ := newJSONContext(http.MethodGet, "/store-owner/reviews/nowhere", "", "hatter@example.com", domain.RoleStoreOwner)
	if err := handler.StoreReviews(c); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}
