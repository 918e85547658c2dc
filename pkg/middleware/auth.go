package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/statewisejobs/statewise-jobs/internal/tokens"
	"github.com/statewisejobs/statewise-jobs/pkg/metrics"
)

// IdentityKey is the gin context key under which verified claims are stored.
const IdentityKey = "identity"

const bearerPrefix = "Bearer "

// unauthorized rejects the request. Missing header, malformed header, bad
// token, and insufficient role all produce this exact response so callers
// cannot probe which check failed.
func unauthorized(c *gin.Context) {
	group := c.FullPath()
	if group == "" {
		group = "unknown"
	}
	metrics.AuthRejected.WithLabelValues(group).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
}

// RequireRole returns a gin middleware that admits a request only when it
// carries a valid `Authorization: Bearer <token>` header whose decoded role
// matches the required one. On success the decoded claims are forwarded in
// the context under IdentityKey.
func RequireRole(secret, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthorized(c)
			return
		}
		claims := tokens.Verify(secret, strings.TrimPrefix(header, bearerPrefix))
		if claims == nil {
			unauthorized(c)
			return
		}
		if role != "" && claims.Role != role {
			unauthorized(c)
			return
		}
		c.Set(IdentityKey, claims)
		c.Next()
	}
}

// RequireAuth admits any valid token regardless of role.
func RequireAuth(secret string) gin.HandlerFunc {
	return RequireRole(secret, "")
}

// Identity returns the verified claims stored by RequireRole, or nil when
// the guard did not run.
func Identity(c *gin.Context) *tokens.Claims {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*tokens.Claims)
	return claims
}
