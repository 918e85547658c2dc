package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/statewisejobs/statewise-jobs/internal/models"
)

// DefaultTTL is the bearer token lifetime. There is no refresh or revocation
// mechanism; clients re-authenticate after expiry.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the decoded token payload shared with every caller of the
// access guard.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates a signed HS256 JWT for the user. Issuance time is
// embedded, so the same identity yields different tokens at different times.
func Generate(secret string, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Verify parses and validates a raw token. It returns the decoded claims,
// or nil for any malformed, tampered, expired, or wrong-secret token. The
// caller cannot distinguish the failure modes.
func Verify(secret, raw string) *Claims {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
