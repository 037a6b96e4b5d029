package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

func TestAccountHandler_AddStoreOwner(t *testing.T) {
	var got ports.NewAccountInput
	handler := NewAccountHandler(&stubAccountService{
		createStoreOwnerFn: func(ctx context.Context, in ports.NewAccountInput) (*domain.StoreOwner, error) {
			got = in
			return &domain.StoreOwner{ID: 7, StoreName: in.StoreName}, nil
		},
	})

	c, rec := newJSONContext(http.MethodPost, "/add-store-owner",
		`{"name":"Mad Hatter","email":"hatter@example.com","password":"Secret#123","store_name":"Tea Party"}`,
		"admin@example.com", domain.RoleAdmin)
	if err := handler.AddStoreOwner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.StoreName != "Tea Party" || got.Email != "hatter@example.com" {
		t.Fatalf("unexpected input: %+v", got)
	}
	var resp messageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Store owner added successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAccountHandler_AddStoreOwner_RequiresStoreName(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{})

	c, _ := newJSONContext(http.MethodPost, "/add-store-owner",
		`{"name":"Mad Hatter","email":"hatter@example.com","password":"Secret#123"}`,
		"admin@example.com", domain.RoleAdmin)
	if code := httpCode(handler.AddStoreOwner(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAccountHandler_AddAdmin_PassesTitle(t *testing.T) {
	var got ports.NewAccountInput
	handler := NewAccountHandler(&stubAccountService{
		createAdminFn: func(ctx context.Context, in ports.NewAccountInput) (*domain.Admin, error) {
			got = in
			return &domain.Admin{Email: in.Email, Role: in.Title}, nil
		},
	})

	c, rec := newJSONContext(http.MethodPost, "/add-admin",
		`{"name":"Queen of Hearts","email":"queen@example.com","password":"Secret#123","role":"Moderator"}`,
		"root@example.com", domain.RoleSuperAdmin)
	if err := handler.AddAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || got.Title != "Moderator" {
		t.Fatalf("unexpected result: code=%d input=%+v", rec.Code, got)
	}
}

func TestAccountHandler_GetUser_NotFound(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{
		getUserFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	c, _ := newJSONContext(http.MethodGet, "/user/ghost@example.com", "", "ghost@example.com", domain.RoleUser)
	c.SetParamNames("email")
	c.SetParamValues("ghost@example.com")
	if err := handler.GetUser(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountHandler_UpdateUser(t *testing.T) {
	var gotEmail string
	var got ports.ProfileInput
	handler := NewAccountHandler(&stubAccountService{
		updateUserFn: func(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, error) {
			gotEmail, got = email, in
			return &domain.User{Email: email, Name: in.Name, Address: in.Address}, nil
		},
	})

	c, rec := newJSONContext(http.MethodPut, "/user/update/alice@example.com",
		`{"name":"Alice Pleasance","address":"2 Looking Glass"}`, "alice@example.com", domain.RoleUser)
	c.SetParamNames("email")
	c.SetParamValues("alice@example.com")
	if err := handler.UpdateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gotEmail != "alice@example.com" || got.Name != "Alice Pleasance" || got.Password != "" {
		t.Fatalf("unexpected call: %s %+v", gotEmail, got)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Profile updated successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if user, ok := resp["user"].(map[string]any); !ok || user["name"] != "Alice Pleasance" {
		t.Fatalf("unexpected user payload: %v", resp["user"])
	}
}

func TestAccountHandler_UpdateUser_WeakPasswordRejected(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{})

	c, _ := newJSONContext(http.MethodPut, "/user/update/alice@example.com",
		`{"name":"Alice Pleasance","password":"short"}`, "alice@example.com", domain.RoleUser)
	c.SetParamNames("email")
	c.SetParamValues("alice@example.com")
	if code := httpCode(handler.UpdateUser(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAccountHandler_UpdateStoreOwner_Rename(t *testing.T) {
	var got ports.ProfileInput
	handler := NewAccountHandler(&stubAccountService{
		updateOwnerFn: func(ctx context.Context, email string, in ports.ProfileInput) (*domain.StoreOwner, error) {
			got = in
			return &domain.StoreOwner{Email: email, StoreName: in.StoreName}, nil
		},
	})

	c, rec := newJSONContext(http.MethodPut, "/store-owner/update/hatter@example.com",
		`{"name":"Mad Hatter","store_name":"Unbirthday"}`, "hatter@example.com", domain.RoleStoreOwner)
	c.SetParamNames("email")
	c.SetParamValues("hatter@example.com")
	if err := handler.UpdateStoreOwner(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.StoreName != "Unbirthday" {
		t.Fatalf("store name not forwarded: %+v", got)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, ok := resp["storeOwner"]; !ok {
		t.Fatalf("expected storeOwner key, got %v", resp)
	}
}
