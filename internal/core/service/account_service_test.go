package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

type accountFixture struct {
	users       *stubAccountRepo[domain.User]
	admins      *stubAccountRepo[domain.Admin]
	storeOwners *stubAccountRepo[domain.StoreOwner]
	svc         *AccountService
	auth        *AuthService
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	f := &accountFixture{
		users:       newStubAccountRepo[domain.User](domain.ErrUserNotFound),
		admins:      newStubAccountRepo[domain.Admin](domain.ErrAdminNotFound),
		storeOwners: newStubAccountRepo[domain.StoreOwner](domain.ErrStoreOwnerNotFound),
	}
	f.svc = NewAccountService(f.users, f.admins, f.storeOwners, stubStoreLookup{owners: f.storeOwners}, testHasher, zerolog.Nop())
	f.auth = NewAuthService(f.users, f.admins, f.storeOwners, testHasher, AuthConfig{JWTSecret: testSecret}, zerolog.Nop())
	return f
}

func aliceInput() ports.NewAccountInput {
	return ports.NewAccountInput{
		Name:     "Alice Liddell",
		Email:    "alice@example.com",
		Address:  "1 Rabbit Hole",
		Password: "Secret#123",
	}
}

func TestAccountService_RegisterUser_ThenLogin(t *testing.T) {
	f := newAccountFixture(t)

	user, err := f.svc.RegisterUser(context.Background(), aliceInput())
	if err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}
	if user.PasswordHash == "Secret#123" {
		t.Fatalf("expected password to be hashed")
	}
	if user.Role != "user" {
		t.Fatalf("unexpected role column: %q", user.Role)
	}

	res, err := f.auth.Login(context.Background(), "alice@example.com", "Secret#123", "user")
	if err != nil {
		t.Fatalf("login after signup: %v", err)
	}
	if res.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", res.Role)
	}
}

func TestAccountService_RegisterUser_DuplicateEmail(t *testing.T) {
	f := newAccountFixture(t)

	if _, err := f.svc.RegisterUser(context.Background(), aliceInput()); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := f.svc.RegisterUser(context.Background(), aliceInput())
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(f.users.rows) != 1 {
		t.Fatalf("expected one stored user, got %d", len(f.users.rows))
	}
}

func TestAccountService_RegisterUser_RaceOnInsertMapsToEmailTaken(t *testing.T) {
	f := newAccountFixture(t)
	f.users.createErr = domain.ErrDuplicateAccount

	if _, err := f.svc.RegisterUser(context.Background(), aliceInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_RegisterUser_MissingFields(t *testing.T) {
	f := newAccountFixture(t)

	in := aliceInput()
	in.Password = ""
	if _, err := f.svc.RegisterUser(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if f.users.creates != 0 {
		t.Fatalf("repository must not be called on invalid input")
	}
}

func TestAccountService_SameEmailAcrossTables(t *testing.T) {
	f := newAccountFixture(t)

	if _, err := f.svc.RegisterUser(context.Background(), aliceInput()); err != nil {
		t.Fatalf("user: %v", err)
	}
	admin := aliceInput()
	admin.Title = "Moderator"
	created, err := f.svc.CreateAdmin(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin with the same email should be allowed: %v", err)
	}
	if created.Role != "Moderator" {
		t.Fatalf("unexpected admin title: %q", created.Role)
	}
}

func TestAccountService_CreateStoreOwner(t *testing.T) {
	f := newAccountFixture(t)

	in := aliceInput()
	in.StoreName = "Tea Party"
	owner, err := f.svc.CreateStoreOwner(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateStoreOwner: %v", err)
	}
	if owner.RatingSum != 0 || owner.RatingCount != 0 {
		t.Fatalf("new store must start unrated: %+v", owner)
	}
	if owner.AverageRating() != nil {
		t.Fatalf("expected nil average for an unrated store")
	}
}

func TestAccountService_CreateStoreOwner_RaceOnStoreNameMapsToStoreNameTaken(t *testing.T) {
	f := newAccountFixture(t)
	f.storeOwners.createErr = domain.ErrDuplicateAccount

	in := aliceInput()
	in.StoreName = "Tea Party"
	if _, err := f.svc.CreateStoreOwner(context.Background(), in); !errors.Is(err, domain.ErrStoreNameTaken) {
		t.Fatalf("expected ErrStoreNameTaken, got %v", err)
	}
}

func TestAccountService_CreateStoreOwner_RaceOnEmailMapsToEmailTaken(t *testing.T) {
	f := newAccountFixture(t)
	in := aliceInput()
	in.StoreName = "Tea Party"
	// The concurrent writer's row becomes visible only after the pre-check.
	f.storeOwners.onCreate = func() {
		f.storeOwners.rows = append(f.storeOwners.rows, &domain.StoreOwner{Email: in.Email, StoreName: "Other"})
	}
	f.storeOwners.createErr = domain.ErrDuplicateAccount

	if _, err := f.svc.CreateStoreOwner(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_CreateStoreOwner_Validation(t *testing.T) {
	f := newAccountFixture(t)

	in := aliceInput()
	if _, err := f.svc.CreateStoreOwner(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing store name: expected ErrInvalidInput, got %v", err)
	}

	in.StoreName = "Tea Party"
	if _, err := f.svc.CreateStoreOwner(context.Background(), in); err != nil {
		t.Fatalf("first owner: %v", err)
	}

	other := ports.NewAccountInput{Name: "Mad Hatter", Email: "hatter@example.com", Password: "Hatter#123", StoreName: "Tea Party"}
	if _, err := f.svc.CreateStoreOwner(context.Background(), other); !errors.Is(err, domain.ErrStoreNameTaken) {
		t.Fatalf("duplicate store name: expected ErrStoreNameTaken, got %v", err)
	}

	in.StoreName = "Another Shop"
	if _, err := f.svc.CreateStoreOwner(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("duplicate email: expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_GetUser_NotFound(t *testing.T) {
	f := newAccountFixture(t)

	if _, err := f.svc.GetUser(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := f.svc.GetStoreOwner(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrStoreOwnerNotFound) {
		t.Fatalf("expected ErrStoreOwnerNotFound, got %v", err)
	}
}

func TestAccountService_UpdateUser_ReplacesProfile(t *testing.T) {
	f := newAccountFixture(t)
	if _, err := f.svc.RegisterUser(context.Background(), aliceInput()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	updated, err := f.svc.UpdateUser(context.Background(), "alice@example.com", ports.ProfileInput{
		Name:     "Alice Kingsleigh",
		Address:  "Underland",
		Password: "NewPass#123",
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Alice Kingsleigh" || updated.Address != "Underland" {
		t.Fatalf("profile not replaced: %+v", updated)
	}

	if _, err := f.auth.Login(context.Background(), "alice@example.com", "Secret#123", "user"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := f.auth.Login(context.Background(), "alice@example.com", "NewPass#123", "user"); err != nil {
		t.Fatalf("new password should log in: %v", err)
	}
}

func TestAccountService_UpdateUser_EmptyPasswordKeepsCurrent(t *testing.T) {
	f := newAccountFixture(t)
	if _, err := f.svc.RegisterUser(context.Background(), aliceInput()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := f.svc.UpdateUser(context.Background(), "alice@example.com", ports.ProfileInput{Name: "Alice L."}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if _, err := f.auth.Login(context.Background(), "alice@example.com", "Secret#123", "user"); err != nil {
		t.Fatalf("password should be unchanged: %v", err)
	}
}

func TestAccountService_UpdateUser_NotFound(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.UpdateUser(context.Background(), "ghost@example.com", ports.ProfileInput{Name: "Ghost"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_UpdateStoreOwner_StoreName(t *testing.T) {
	f := newAccountFixture(t)
	for _, in := range []ports.NewAccountInput{
		{Name: "Alice Liddell", Email: "alice@example.com", Password: "Secret#123", StoreName: "Tea Party"},
		{Name: "Mad Hatter", Email: "hatter@example.com", Password: "Hatter#123", StoreName: "Hat Shop"},
	} {
		if _, err := f.svc.CreateStoreOwner(context.Background(), in); err != nil {
			t.Fatalf("create %s: %v", in.Email, err)
		}
	}

	// Keeping one's own store name is not a conflict.
	if _, err := f.svc.UpdateStoreOwner(context.Background(), "alice@example.com", ports.ProfileInput{Name: "Alice", StoreName: "Tea Party"}); err != nil {
		t.Fatalf("same store name: %v", err)
	}

	_, err := f.svc.UpdateStoreOwner(context.Background(), "alice@example.com", ports.ProfileInput{Name: "Alice", StoreName: "Hat Shop"})
	if !errors.Is(err, domain.ErrStoreNameTaken) {
		t.Fatalf("expected ErrStoreNameTaken, got %v", err)
	}

	owner, err := f.svc.UpdateStoreOwner(context.Background(), "alice@example.com", ports.ProfileInput{Name: "Alice", StoreName: "Looking Glass"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if owner.StoreName != "Looking Glass" {
		t.Fatalf("unexpected store name: %q", owner.StoreName)
	}
}
