package users

import (
	"context"
	"errors"
	"strings"

	"github.com/statewisejobs/statewise-jobs/internal/auth"
	"github.com/statewisejobs/statewise-jobs/internal/models"
)

// Validation and outcome errors reported to the handler layer. Handlers map
// them onto the HTTP taxonomy (400 / 401 / 409).
var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

// Service encapsulates registration and sign-in logic over the identity store.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// NormalizeEmail lower-cases and trims an email; every lookup and insert
// goes through this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, hashes the password, and creates a role=user
// account. The pre-check read gives a friendly conflict for the common case;
// the store's unique index settles concurrent races.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	normalized := NormalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:    normalized,
		Password: hashed,
		Role:     models.RoleUser,
		IsActive: true,
	}
	return s.repo.Create(ctx, u)
}

// Login authenticates an email/password pair. An unknown email, an
// OAuth-origin account without a password, and a wrong password all fail
// with the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password == "" || !auth.CheckPassword(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// FindOrCreateByEmail resolves a provider-verified email to a local account,
// creating a passwordless role=user record on first sign-in. When a
// concurrent creation wins the unique-index race, the loser re-reads the
// winner's record.
func (s *Service) FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := NormalizeEmail(email)
	u, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	created, err := s.repo.Create(ctx, &models.User{
		Email:    normalized,
		Role:     models.RoleUser,
		IsActive: true,
	})
	if err == ErrDuplicateEmail {
		return s.repo.GetByEmail(ctx, normalized)
	}
	return created, err
}
