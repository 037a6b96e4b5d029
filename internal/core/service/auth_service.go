package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
	"github.com/storerating/store-rating/internal/pkg/metrics"
)

// BootstrapAdmin is the operator-configured system-admin credential. It is
// disabled when either field is empty.
type BootstrapAdmin struct {
	Email    string
	Password string
}

func (b BootstrapAdmin) enabled() bool {
	return b.Email != "" && b.Password != ""
}

func (b BootstrapAdmin) matches(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(b.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(b.Password)) == 1
	return emailOK && passOK
}

// AuthConfig holds token and bootstrap settings for AuthService.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Bootstrap BootstrapAdmin
}

// AuthService implements role-dispatched login.
type AuthService struct {
	finders   map[domain.Role]ports.CredentialFinder
	passwords PasswordHasher
	// dummyHash is compared against when the email is unknown so both
	// failure paths pay the same bcrypt cost.
	dummyHash string
	verify    func(hash, password string) bool
	cfg       AuthConfig
	logger    zerolog.Logger
}

func NewAuthService(
	users, admins, storeOwners ports.CredentialFinder,
	passwords PasswordHasher,
	cfg AuthConfig,
	logger zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	dummy, err := passwords.Hash("store-rating:unknown-account")
	if err != nil {
		logger.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	return &AuthService{
		dummyHash: dummy,
		verify:    passwords.Matches,
		finders: map[domain.Role]ports.CredentialFinder{
			domain.RoleUser:       users,
			domain.RoleAdmin:      admins,
			domain.RoleStoreOwner: storeOwners,
		},
		passwords: passwords,
		cfg:       cfg,
		logger:    logger,
	}
}

// Login verifies email/password against the table selected by role. Unknown
// email and wrong password yield the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*ports.LoginResult, error) {
	if domain.Role(role) == domain.RoleSuperAdmin && s.cfg.Bootstrap.enabled() && s.cfg.Bootstrap.matches(email, password) {
		token, err := s.generateToken(email, domain.RoleSuperAdmin)
		if err != nil {
			return nil, fmt.Errorf("login: sign token: %w", err)
		}
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.RoleSuperAdmin), "success").Inc()
		s.logger.Info().Str("email", email).Msg("bootstrap admin login")
		return &ports.LoginResult{Email: email, Role: domain.RoleSuperAdmin, Token: token, Bootstrap: true}, nil
	}

	r, err := domain.ParseAccountRole(role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid", "rejected").Inc()
		return nil, err
	}

	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues(string(r), "rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.finders[r].FindCredential(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			s.verify(s.dummyHash, password)
			metrics.LoginAttemptsTotal.WithLabelValues(string(r), "rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.verify(cred.PasswordHash, password) {
		metrics.LoginAttemptsTotal.WithLabelValues(string(r), "rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(cred.Email, r)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(r), "success").Inc()
	return &ports.LoginResult{Email: cred.Email, Role: r, Token: token}, nil
}

func (s *AuthService) generateToken(email string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":   email,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}
