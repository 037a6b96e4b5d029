package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Email string
	Role  domain.Role
	Token string
	// Bootstrap is true when the configured system-admin credential matched.
	Bootstrap bool
}

type AuthService interface {
	Login(ctx context.Context, email, password, role string) (*LoginResult, error)
}
