package users

import (
	"context"
	"testing"
	"time"

	"github.com/statewisejobs/statewise-jobs/internal/auth"
	"github.com/statewisejobs/statewise-jobs/internal/models"
)

// fakeRepo is an in-memory Repository keyed by normalized email, enforcing
// the same uniqueness the Mongo index does.
type fakeRepo struct {
	byEmail map[string]*models.User
	getErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u.ID = "id-" + u.Email
	u.CreatedAt = now
	u.UpdatedAt = now
	f.byEmail[u.Email] = u
	cp := *u
	return &cp, nil
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	u, err := svc.Register(context.Background(), "  A@B.com ", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "a@b.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Role != models.RoleUser {
		t.Fatalf("expected role=user, got %q", u.Role)
	}
	if !u.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if u.Password == "secret1" || u.Password == "" {
		t.Fatalf("expected stored password to be a hash")
	}
	if !auth.CheckPassword("secret1", u.Password) {
		t.Fatalf("stored hash should verify against original password")
	}
}

func TestRegister_DuplicateConflict(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Register(context.Background(), "A@B.com", "secret1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.com", "other-password"); err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing email", "", "secret1", ErrMissingFields},
		{"missing password", "a@b.com", "", ErrMissingFields},
		{"five chars", "a@b.com", "abc12", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.email, tc.password); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	// six characters is the boundary that succeeds
	if _, err := svc.Register(context.Background(), "a@b.com", "abc123"); err != nil {
		t.Fatalf("six-char password should register: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Register(context.Background(), "user@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := svc.Login(context.Background(), "USER@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Email != "user@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	if _, err := svc.Register(context.Background(), "user@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	// OAuth-origin account without a password
	if _, err := repo.Create(context.Background(), &models.User{Email: "oauth@example.com", Role: models.RoleUser, IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"nobody@example.com", "secret1"},
		{"user@example.com", "wrong"},
		{"oauth@example.com", "anything"},
	} {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); err != ErrInvalidCredentials {
			t.Fatalf("login(%s): got %v, want ErrInvalidCredentials", tc.email, err)
		}
	}
}

func TestFindOrCreateByEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	u1, err := svc.FindOrCreateByEmail(context.Background(), " New@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u1.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", u1.Email)
	}
	if u1.Password != "" {
		t.Fatalf("OAuth-created account must not carry a password")
	}
	if u1.Role != models.RoleUser {
		t.Fatalf("expected role=user, got %q", u1.Role)
	}

	// second sign-in resolves to the same record
	u2, err := svc.FindOrCreateByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("expected existing account, got new ID %q", u2.ID)
	}
}
