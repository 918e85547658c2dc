package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/statewisejobs/statewise-jobs/internal/models"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerate_RoundTripClaims(t *testing.T) {
	u := &models.User{ID: "user-123", Email: "test@example.com", Role: models.RoleAdmin}
	tokenStr, err := Generate(testSecret, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	claims := Verify(testSecret, tokenStr)
	if claims == nil {
		t.Fatalf("expected valid token to verify")
	}
	if claims.UserID != u.ID {
		t.Fatalf("unexpected userId claim: got=%v want=%v", claims.UserID, u.ID)
	}
	if claims.Email != u.Email {
		t.Fatalf("unexpected email claim: got=%v want=%v", claims.Email, u.Email)
	}
	if claims.Role != u.Role {
		t.Fatalf("unexpected role claim: got=%v want=%v", claims.Role, u.Role)
	}
}

func TestGenerate_DifferentTokensOverTime(t *testing.T) {
	u := &models.User{ID: "u1", Email: "a@b.c", Role: models.RoleUser}
	t1, err := Generate(testSecret, u, time.Hour)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	time.Sleep(1100 * time.Millisecond) // iat has second granularity
	t2, err := Generate(testSecret, u, time.Hour)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("expected issuance time to produce distinct tokens")
	}
}

func TestVerify_Expired(t *testing.T) {
	u := &models.User{ID: "u2", Email: "x@x", Role: models.RoleUser}
	tokenStr, err := Generate(testSecret, u, -time.Minute)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if Verify(testSecret, tokenStr) != nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	u := &models.User{ID: "u3", Email: "bob@example.com", Role: models.RoleUser}
	tokenStr, err := Generate(testSecret, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if Verify("different-secret-xxxxxxxxxxxxxxxx", tokenStr) != nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	if Verify(testSecret, "not-a-token") != nil {
		t.Fatalf("expected malformed token to return nil")
	}
	if Verify(testSecret, "") != nil {
		t.Fatalf("expected empty token to return nil")
	}
}

// tokens use the JWT base64url alphabet with no padding
func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := encodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := encodeSegment([]byte(`{"userId":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if Verify(testSecret, tok) != nil {
		t.Fatalf("expected alg=none token to be rejected")
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	u := &models.User{ID: "user-t", Email: "t@example.com", Role: models.RoleUser}
	tokenStr, err := Generate(testSecret, u, 5*time.Minute)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	payloadStr := strings.Replace(string(payloadBytes), `"role":"user"`, `"role":"admin"`, 1)
	parts[1] = encodeSegment([]byte(payloadStr))
	if Verify(testSecret, strings.Join(parts, ".")) != nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestVerify_LongExpired(t *testing.T) {
	u := &models.User{ID: "u4", Email: "old@example.com", Role: models.RoleUser}
	tokenStr, err := Generate(testSecret, u, -7*24*time.Hour)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if Verify(testSecret, tokenStr) != nil {
		t.Fatalf("expected token expired a week ago to fail verification")
	}
}
