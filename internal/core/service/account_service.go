package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
	"github.com/storerating/store-rating/internal/pkg/metrics"
)

// AccountService implements account creation, lookup and profile updates
// over the three typed account repositories.
type AccountService struct {
	users       ports.AccountRepository[domain.User]
	admins      ports.AccountRepository[domain.Admin]
	storeOwners ports.AccountRepository[domain.StoreOwner]
	stores      ports.StoreLookup
	passwords   PasswordHasher
	logger      zerolog.Logger
}

func NewAccountService(
	users ports.AccountRepository[domain.User],
	admins ports.AccountRepository[domain.Admin],
	storeOwners ports.AccountRepository[domain.StoreOwner],
	stores ports.StoreLookup,
	passwords PasswordHasher,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:       users,
		admins:      admins,
		storeOwners: storeOwners,
		stores:      stores,
		passwords:   passwords,
		logger:      logger,
	}
}

// RegisterUser creates an end-user account. Used by both self-service signup
// and admin-initiated creation.
func (s *AccountService) RegisterUser(ctx context.Context, in ports.NewAccountInput) (*domain.User, error) {
	if err := requireAccountFields(in); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.users, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register user: hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
	}
	if err := s.create(domain.RoleUser, func() error { return s.users.Create(ctx, user) }, emailTaken); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) CreateAdmin(ctx context.Context, in ports.NewAccountInput) (*domain.Admin, error) {
	if err := requireAccountFields(in); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.admins, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create admin: hash password: %w", err)
	}

	admin := &domain.Admin{
		Name:         in.Name,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: hash,
		Role:         in.Title,
	}
	if err := s.create(domain.RoleAdmin, func() error { return s.admins.Create(ctx, admin) }, emailTaken); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AccountService) CreateStoreOwner(ctx context.Context, in ports.NewAccountInput) (*domain.StoreOwner, error) {
	if err := requireAccountFields(in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.StoreName) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ensureEmailFree(ctx, s.storeOwners, in.Email); err != nil {
		return nil, err
	}
	if err := s.ensureStoreNameFree(ctx, in.StoreName, ""); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create store owner: hash password: %w", err)
	}

	owner := &domain.StoreOwner{
		Name:         in.Name,
		Email:        in.Email,
		StoreName:    in.StoreName,
		Address:      in.Address,
		PasswordHash: hash,
	}
	// Both email and store_name are unique; a lost race on either surfaces
	// as the same duplicate error, so re-check which one is now held.
	ownerConflict := func() error {
		if err := ensureEmailFree(ctx, s.storeOwners, in.Email); err != nil {
			return err
		}
		return domain.ErrStoreNameTaken
	}
	if err := s.create(domain.RoleStoreOwner, func() error { return s.storeOwners.Create(ctx, owner) }, ownerConflict); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *AccountService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *AccountService) GetAdmin(ctx context.Context, email string) (*domain.Admin, error) {
	return s.admins.FindByEmail(ctx, email)
}

func (s *AccountService) GetStoreOwner(ctx context.Context, email string) (*domain.StoreOwner, error) {
	return s.storeOwners.FindByEmail(ctx, email)
}

func (s *AccountService) UpdateUser(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, error) {
	in.StoreName = ""
	return updateAccount(ctx, s.users, s.passwords, email, in)
}

func (s *AccountService) UpdateAdmin(ctx context.Context, email string, in ports.ProfileInput) (*domain.Admin, error) {
	in.StoreName = ""
	return updateAccount(ctx, s.admins, s.passwords, email, in)
}

func (s *AccountService) UpdateStoreOwner(ctx context.Context, email string, in ports.ProfileInput) (*domain.StoreOwner, error) {
	if in.StoreName != "" {
		if err := s.ensureStoreNameFree(ctx, in.StoreName, email); err != nil {
			return nil, err
		}
	}
	return updateAccount(ctx, s.storeOwners, s.passwords, email, in)
}

func emailTaken() error { return domain.ErrEmailTaken }

// create runs insert; a unique-index violation is resolved by onDuplicate.
func (s *AccountService) create(kind domain.Role, insert func() error, onDuplicate func() error) error {
	if err := insert(); err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return onDuplicate()
		}
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("failed to create account")
		return fmt.Errorf("create %s: %w", kind, err)
	}
	metrics.AccountsCreatedTotal.WithLabelValues(string(kind)).Inc()
	s.logger.Info().Str("kind", string(kind)).Msg("account created")
	return nil
}

// ensureStoreNameFree rejects a store name held by an owner other than ownerEmail.
func (s *AccountService) ensureStoreNameFree(ctx context.Context, storeName, ownerEmail string) error {
	existing, err := s.stores.FindByStoreName(ctx, storeName)
	switch {
	case err == nil:
		if ownerEmail != "" && existing.Email == ownerEmail {
			return nil
		}
		return domain.ErrStoreNameTaken
	case errors.Is(err, domain.ErrStoreNotFound):
		return nil
	default:
		return fmt.Errorf("check store name: %w", err)
	}
}

func ensureEmailFree[T any](ctx context.Context, repo ports.AccountRepository[T], email string) error {
	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrEmailTaken
	case domain.KindOf(err) == domain.KindNotFound:
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

func updateAccount[T any](
	ctx context.Context,
	repo ports.AccountRepository[T],
	passwords PasswordHasher,
	email string,
	in ports.ProfileInput,
) (*T, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	p := domain.ProfileUpdate{
		Name:      in.Name,
		Address:   in.Address,
		StoreName: in.StoreName,
	}
	if in.Password != "" {
		hash, err := passwords.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		p.PasswordHash = hash
	}

	acct, err := repo.Update(ctx, email, p)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, domain.ErrStoreNameTaken
		}
		return nil, err
	}
	return acct, nil
}

func requireAccountFields(in ports.NewAccountInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return domain.ErrInvalidInput
	}
	return nil
}
