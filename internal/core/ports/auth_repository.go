package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// CredentialFinder looks up login credentials in one account table.
type CredentialFinder interface {
	FindCredential(ctx context.Context, email string) (*domain.Credential, error)
}
