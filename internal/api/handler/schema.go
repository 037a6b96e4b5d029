package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// ── Requests ─────────────────────────────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Secret#123"`
	Role     string `json:"role" example:"user" enums:"user,admin,store_owner,super_admin"`
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=60" example:"Alice Liddell"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Address  string `json:"address" validate:"max=400" example:"1 Rabbit Hole"`
	Password string `json:"password" validate:"required,strongpassword" example:"Secret#123"`
}

func (r signupRequest) toInput() ports.NewAccountInput {
	return ports.NewAccountInput{Name: r.Name, Email: r.Email, Address: r.Address, Password: r.Password}
}

type addStoreOwnerRequest struct {
	signupRequest
	StoreName string `json:"store_name" validate:"required,max=255" example:"Tea Party"`
}

type addAdminRequest struct {
	signupRequest
	// Title shown on the admin dashboard, e.g. "Moderator".
	Role string `json:"role" validate:"max=64" example:"Moderator"`
}

type updateProfileRequest struct {
	Name    string `json:"name" validate:"required,min=5,max=60" example:"Alice Liddell"`
	Address string `json:"address" validate:"max=400" example:"1 Rabbit Hole"`
	// Empty keeps the current password.
	Password string `json:"password" validate:"omitempty,strongpassword" example:""`
}

func (r updateProfileRequest) toInput() ports.ProfileInput {
	return ports.ProfileInput{Name: r.Name, Address: r.Address, Password: r.Password}
}

type updateStoreOwnerRequest struct {
	updateProfileRequest
	StoreName string `json:"store_name" validate:"omitempty,max=255" example:"Tea Party"`
}

type rateStoreRequest struct {
	Rating    ratingValue `json:"rating" swaggertype:"integer" example:"4"`
	UserEmail string      `json:"userEmail" validate:"required,email" example:"alice@example.com"`
}

// ratingValue accepts 4 as well as "4"; browser forms post select values as
// strings.
type ratingValue int

func (v *ratingValue) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*v = ratingValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*v = ratingValue(n)
	return nil
}

// ── Responses ────────────────────────────────────────────────────────────────

type errorResponse struct {
	Error string `json:"error" example:"Invalid credentials"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Role    string `json:"role" example:"user"`
	Token   string `json:"token"`
}

type signupResponse struct {
	Message string       `json:"message" example:"User registered successfully"`
	User    *domain.User `json:"user"`
}

type superAdminDashboardResponse struct {
	Admins []domain.Admin      `json:"admins"`
	Users  []domain.User       `json:"users"`
	Stores []domain.StoreOwner `json:"stores"`
}

type adminDashboardResponse struct {
	Users  []domain.User       `json:"users"`
	Stores []domain.StoreOwner `json:"stores"`
}

type storeSummaryResponse struct {
	ID            uint     `json:"id"`
	StoreName     string   `json:"store_name"`
	StoreAddress  string   `json:"store_address"`
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int64    `json:"total_ratings"`
	UserRating    *int     `json:"user_rating"`
}

type userDashboardResponse struct {
	Stores []storeSummaryResponse `json:"stores"`
}

type userProfileResponse struct {
	Message string       `json:"message" example:"Profile updated successfully"`
	User    *domain.User `json:"user"`
}

type adminProfileResponse struct {
	Message string        `json:"message" example:"Profile updated successfully"`
	Admin   *domain.Admin `json:"admin"`
}

type storeOwnerProfileResponse struct {
	Message    string             `json:"message" example:"Profile updated successfully"`
	StoreOwner *domain.StoreOwner `json:"storeOwner"`
}

func toStoreSummaryResponses(stores []domain.StoreSummary) []storeSummaryResponse {
	out := make([]storeSummaryResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, storeSummaryResponse{
			ID:            s.ID,
			StoreName:     s.StoreName,
			StoreAddress:  s.Address,
			AverageRating: s.AverageRating,
			TotalRatings:  s.RatingCount,
			UserRating:    s.UserRating,
		})
	}
	return out
}
