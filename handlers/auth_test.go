package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statewisejobs/statewise-jobs/internal/config"
	"github.com/statewisejobs/statewise-jobs/internal/models"
	"github.com/statewisejobs/statewise-jobs/internal/oidc"
	"github.com/statewisejobs/statewise-jobs/internal/tokens"
	"github.com/statewisejobs/statewise-jobs/internal/users"
)

// in-memory user repo enforcing the unique-email index
type fakeUserRepo struct {
	byEmail map[string]*models.User
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, users.ErrDuplicateEmail
	}
	f.seq++
	u.ID = fmt.Sprintf("usr_%d", f.seq)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byEmail[u.Email] = &cp
	return u, nil
}

func newAuthRouter(t *testing.T, verifier oidc.TokenVerifier) (*gin.Engine, *fakeUserRepo, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "handlers-test-secret"
	cfg.JWT.TokenTTL = time.Hour

	repo := newFakeUserRepo()
	r := gin.New()
	NewAuthHandler(cfg, users.NewService(repo), verifier).Register(r)
	return r, repo, cfg
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	} `json:"data"`
}

func TestSignUp_CreatesUserAndToken(t *testing.T) {
	r, _, cfg := newAuthRouter(t, nil)

	w := postJSON(t, r, "/api/auth/register", gin.H{"email": "  New@Example.COM ", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "new@example.com", resp.Data.User["email"])
	assert.Equal(t, models.RoleUser, resp.Data.User["role"])
	_, hasPassword := resp.Data.User["password"]
	assert.False(t, hasPassword, "hash must never leave the server")

	claims := tokens.Verify(cfg.JWT.Secret, resp.Data.Token)
	require.NotNil(t, claims)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestSignUp_ValidationErrors(t *testing.T) {
	r, _, _ := newAuthRouter(t, nil)

	for name, body := range map[string]gin.H{
		"missing email":    {"password": "secret1"},
		"missing password": {"email": "a@b.com"},
		"short password":   {"email": "a@b.com", "password": "abc12"},
	} {
		w := postJSON(t, r, "/api/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestSignUp_DuplicateEmailConflicts(t *testing.T) {
	r, _, _ := newAuthRouter(t, nil)

	w := postJSON(t, r, "/api/auth/register", gin.H{"email": "dup@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/register", gin.H{"email": "DUP@example.com", "password": "secret2"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_SuccessAndUniformFailure(t *testing.T) {
	r, _, _ := newAuthRouter(t, nil)

	w := postJSON(t, r, "/api/auth/register", gin.H{"email": "who@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/login", gin.H{"email": "WHO@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)

	// wrong password and unknown account are indistinguishable
	wrongPw := postJSON(t, r, "/api/auth/login", gin.H{"email": "who@example.com", "password": "nope"})
	unknown := postJSON(t, r, "/api/auth/login", gin.H{"email": "ghost@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

// insecureCredential builds a payload-only ID token the insecure verifier accepts.
func insecureCredential(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	b, err := json.Marshal(claims)
	require.NoError(t, err)
	return "eyJhbGciOiJub25lIn0." + base64.RawURLEncoding.EncodeToString(b) + ".sig"
}

func TestGoogle_FindOrCreate(t *testing.T) {
	r, repo, cfg := newAuthRouter(t, oidc.NewInsecureVerifier())

	cred := insecureCredential(t, map[string]interface{}{"email": "G.User@Gmail.com", "name": "G User"})
	w := postJSON(t, r, "/api/auth/google", gin.H{"credential": cred})
	require.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "g.user@gmail.com", resp.Data.User["email"])
	require.NotNil(t, tokens.Verify(cfg.JWT.Secret, resp.Data.Token))

	stored := repo.byEmail["g.user@gmail.com"]
	require.NotNil(t, stored)
	assert.Empty(t, stored.Password, "oauth accounts carry no credential")

	// second sign-in reuses the account
	w = postJSON(t, r, "/api/auth/google", gin.H{"credential": cred})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.byEmail, 1)
}

func TestGoogle_RejectsCredentialWithoutEmail(t *testing.T) {
	r, _, _ := newAuthRouter(t, oidc.NewInsecureVerifier())

	cred := insecureCredential(t, map[string]interface{}{"sub": "123"})
	w := postJSON(t, r, "/api/auth/google", gin.H{"credential": cred})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGoogle_UnconfiguredVerifier(t *testing.T) {
	r, _, _ := newAuthRouter(t, nil)

	w := postJSON(t, r, "/api/auth/google", gin.H{"credential": "anything"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	r, _, cfg := newAuthRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.Generate(cfg.JWT.Secret, &models.User{ID: "u1", Email: "me@example.com", Role: models.RoleUser}, time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.Data.ID)
	assert.Equal(t, "me@example.com", resp.Data.Email)
	assert.Equal(t, models.RoleUser, resp.Data.Role)
}
