package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statewisejobs/statewise-jobs/internal/config"
	"github.com/statewisejobs/statewise-jobs/internal/models"
	"github.com/statewisejobs/statewise-jobs/internal/oidc"
	"github.com/statewisejobs/statewise-jobs/internal/tokens"
	"github.com/statewisejobs/statewise-jobs/internal/users"
	"github.com/statewisejobs/statewise-jobs/pkg/logger"
	"github.com/statewisejobs/statewise-jobs/pkg/middleware"
)

// RegisterRequest is the sign-up payload. Field-level validation (presence,
// password length) lives in the users service so the API reports the same
// errors regardless of transport.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the password sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleRequest carries the ID token issued by Google Identity Services.
type GoogleRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// AuthHandler serves registration, password login, Google sign-in, and the
// current-user endpoint.
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
	verifier oidc.TokenVerifier
}

func NewAuthHandler(cfg *config.Config, u *users.Service, v oidc.TokenVerifier) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, verifier: v}
}

// Register mounts the auth routes under /api/auth.
func (h *AuthHandler) Register(r *gin.Engine) {
	a := r.Group("/api/auth")
	a.POST("/register", h.SignUp)
	a.POST("/login", h.Login)
	a.POST("/google", h.Google)
	a.GET("/me", middleware.RequireAuth(h.cfg.JWT.Secret), h.Me)
}

func (h *AuthHandler) issueToken(c *gin.Context, status int, u *models.User) {
	token, err := tokens.Generate(h.cfg.JWT.Secret, u, h.cfg.JWT.TokenTTL)
	if err != nil {
		logger.Errorf("token generation failed for %s: %v", u.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to sign in"})
		return
	}
	c.JSON(status, gin.H{"success": true, "data": gin.H{"user": u.Public(), "token": token}})
}

// SignUp creates a user account and returns it with a fresh token.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	u, err := h.usersSvc.Register(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
	case errors.Is(err, users.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password must be at least 6 characters"})
	case errors.Is(err, users.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already registered"})
	case err != nil:
		logger.Errorf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to register"})
	default:
		h.issueToken(c, http.StatusCreated, u)
	}
}

// Login verifies email/password credentials. Every failure mode returns the
// same 401 body so callers cannot probe which accounts exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	u, err := h.usersSvc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}
	if err != nil {
		logger.Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to sign in"})
		return
	}
	h.issueToken(c, http.StatusOK, u)
}

// Google exchanges a verified Google ID token for a local session token,
// creating a passwordless account on first sign-in.
func (h *AuthHandler) Google(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Google sign-in is not configured"})
		return
	}
	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	idt, err := h.verifier.Verify(c.Request.Context(), req.Credential)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Google credential"})
		return
	}
	var claims struct {
		Email string `json:"email"`
	}
	if err := idt.Claims(&claims); err != nil || claims.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Google credential"})
		return
	}
	u, err := h.usersSvc.FindOrCreateByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		logger.Errorf("google sign-in upsert failed for %s: %v", claims.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to sign in"})
		return
	}
	h.issueToken(c, http.StatusOK, u)
}

// Me returns the identity carried by the verified bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
	}})
}
