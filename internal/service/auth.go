package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
)

const (
	// bcryptCost trades login latency for brute-force resistance. 12 is
	// roughly 250ms on current hardware.
	bcryptCost = 12

	minPasswordLength = 8

	tokenTTL = 24 * time.Hour
)

// tokenClaims is the JWT payload. Subject carries the user ID; the admin
// flag is informational only — authorization always re-reads the user row.
type tokenClaims struct {
	jwt.RegisteredClaims
	Admin bool `json:"adm"`
}

// AuthService implements account management and token-based authentication.
type AuthService struct {
	users   repo.UserRepo
	drivers repo.DriverRepo
	secret  []byte

	// now is swapped out in tests for deterministic token expiry.
	now func() time.Time
}

// NewAuthService constructs an AuthService signing tokens with secret.
func NewAuthService(users repo.UserRepo, drivers repo.DriverRepo, secret []byte) *AuthService {
	return &AuthService{
		users:   users,
		drivers: drivers,
		secret:  secret,
		now:     time.Now,
	}
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	return nil
}

// SetupOpen reports whether first-run setup is still available, i.e. no
// user account exists yet.
func (s *AuthService) SetupOpen(ctx context.Context) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("service.AuthService.SetupOpen: %w", err)
	}
	return n == 0, nil
}

// Setup creates the initial admin account, optionally with a driver profile
// attached, and returns the user plus a signed token. It fails with
// ErrConflict once any account exists; after that only an admin can create
// users.
func (s *AuthService) Setup(ctx context.Context, username, password, driverName string) (domain.User, string, error) {
	if err := validateCredentials(username, password); err != nil {
		return domain.User{}, "", err
	}
	open, err := s.SetupOpen(ctx)
	if err != nil {
		return domain.User{}, "", err
	}
	if !open {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Setup: %w: setup already completed", domain.ErrConflict)
	}

	var driverID *uuid.UUID
	if strings.TrimSpace(driverName) != "" {
		driver, err := s.drivers.Create(ctx, domain.Driver{Name: strings.TrimSpace(driverName)})
		if err != nil {
			return domain.User{}, "", fmt.Errorf("service.AuthService.Setup: %w", err)
		}
		driverID = &driver.ID
	}

	user, err := s.createUser(ctx, username, password, driverID, true)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Setup: %w", err)
	}
	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Setup: %w", err)
	}
	return user, token, nil
}

// CreateUser adds an account. Admin-only; the handler layer enforces that.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, driverID *uuid.UUID, isAdmin bool) (domain.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return domain.User{}, err
	}
	if driverID != nil {
		if _, err := s.drivers.GetByID(ctx, *driverID); err != nil {
			return domain.User{}, fmt.Errorf("service.AuthService.CreateUser: %w", err)
		}
	}
	user, err := s.createUser(ctx, username, password, driverID, isAdmin)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.CreateUser: %w", err)
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, username, password string, driverID *uuid.UUID, isAdmin bool) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, domain.User{
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		DriverID:     driverID,
		IsAdmin:      isAdmin,
	})
}

// ListUsers returns all accounts ordered by username.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.AuthService.ListUsers: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// DeleteUser removes an account.
func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.AuthService.DeleteUser: %w", err)
	}
	return nil
}

// Login checks the credentials and returns the user plus a signed token.
// Unknown usernames and wrong passwords both come back as ErrUnauthorized
// so responses don't leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w: invalid credentials", domain.ErrUnauthorized)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w: invalid credentials", domain.ErrUnauthorized)
	}
	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}

// UserFromToken validates a bearer token and loads the current user row.
// Loading rather than trusting the claims means revoked accounts and
// changed admin flags take effect immediately.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (domain.User, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return domain.User{}, fmt.Errorf("service.AuthService.UserFromToken: %w: invalid token", domain.ErrUnauthorized)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.UserFromToken: %w: invalid token", domain.ErrUnauthorized)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.AuthService.UserFromToken: %w: unknown user", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.UserFromToken: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Admin: user.IsAdmin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
