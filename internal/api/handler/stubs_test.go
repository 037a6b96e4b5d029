package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/middleware"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password, role string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password, role string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password, role)
}

// stubAccountService fails every call that has no func set.
type stubAccountService struct {
	registerUserFn     func(ctx context.Context, in ports.NewAccountInput) (*domain.User, error)
	createAdminFn      func(ctx context.Context, in ports.NewAccountInput) (*domain.Admin, error)
	createStoreOwnerFn func(ctx context.Context, in ports.NewAccountInput) (*domain.StoreOwner, error)
	getUserFn          func(ctx context.Context, email string) (*domain.User, error)
	updateUserFn       func(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, error)
	updateOwnerFn      func(ctx context.Context, email string, in ports.ProfileInput) (*domain.StoreOwner, error)
}

var errNotStubbed = domain.ErrInvalidInput

func (s *stubAccountService) RegisterUser(ctx context.Context, in ports.NewAccountInput) (*domain.User, error) {
	if s.registerUserFn == nil {
		return nil, errNotStubbed
	}
	return s.registerUserFn(ctx, in)
}

func (s *stubAccountService) CreateAdmin(ctx context.Context, in ports.NewAccountInput) (*domain.Admin, error) {
	if s.createAdminFn == nil {
		return nil, errNotStubbed
	}
	return s.createAdminFn(ctx, in)
}

func (s *stubAccountService) CreateStoreOwner(ctx context.Context, in ports.NewAccountInput) (*domain.StoreOwner, error) {
	if s.createStoreOwnerFn == nil {
		return nil, errNotStubbed
	}
	return s.createStoreOwnerFn(ctx, in)
}

func (s *stubAccountService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	if s.getUserFn == nil {
		return nil, errNotStubbed
	}
	return s.getUserFn(ctx, email)
}

func (s *stubAccountService) GetAdmin(context.Context, string) (*domain.Admin, error) {
	return nil, errNotStubbed
}

func (s *stubAccountService) GetStoreOwner(context.Context, string) (*domain.StoreOwner, error) {
	return nil, errNotStubbed
}

func (s *stubAccountService) UpdateUser(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, error) {
	if s.updateUserFn == nil {
		return nil, errNotStubbed
	}
	return s.updateUserFn(ctx, email, in)
}

func (s *stubAccountService) UpdateAdmin(context.Context, string, ports.ProfileInput) (*domain.Admin, error) {
	return nil, errNotStubbed
}

func (s *stubAccountService) UpdateStoreOwner(ctx context.Context, email string, in ports.ProfileInput) (*domain.StoreOwner, error) {
	if s.updateOwnerFn == nil {
		return nil, errNotStubbed
	}
	return s.updateOwnerFn(ctx, email, in)
}

type stubRatingService struct {
	submitFn func(ctx context.Context, in ports.SubmitRatingInput) (*ports.RatingResult, error)
}

func (s *stubRatingService) Submit(ctx context.Context, in ports.SubmitRatingInput) (*ports.RatingResult, error) {
	return s.submitFn(ctx, in)
}

type stubDashboardService struct {
	overview *ports.SystemOverview
	stores   []domain.StoreSummary
	reviews  []domain.Review
	err      error
}

func (s *stubDashboardService) SystemOverview(context.Context) (*ports.SystemOverview, error) {
	return s.overview, s.err
}

func (s *stubDashboardService) AdminOverview(context.Context) (*ports.AdminOverview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.AdminOverview{Users: s.overview.Users, Stores: s.overview.Stores}, nil
}

func (s *stubDashboardService) StoresForUser(context.Context, string) ([]domain.StoreSummary, error) {
	return s.stores, s.err
}

func (s *stubDashboardService) StoreReviews(context.Context, string) ([]domain.Review, error) {
	return s.reviews, s.err
}

// newJSONContext builds an echo context with the validator installed and,
// when email is non-empty, the claims the Auth middleware would set.
func newJSONContext(method, target, body, email string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set(middleware.ContextKeyEmail, email)
		c.Set(middleware.ContextKeyRole, string(role))
	}
	return c, rec
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
