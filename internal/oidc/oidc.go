package oidc

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Token is a minimal interface for a verified ID token that can expose its
// claims. It is satisfied by *oidc.IDToken and by test fakes.
type Token interface {
	Claims(v interface{}) error
}

// TokenVerifier is the interface the sign-in handler depends on.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Verifier validates Google ID tokens against the provider's published keys.
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers the OIDC provider at issuer (Google in production,
// a test server in integration runs) and builds an ID-token verifier bound
// to the given client ID.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &Verifier{provider: provider, verifier: verifier}, nil
}

// Verify checks the signature, issuer, audience, and expiry of raw.
func (v *Verifier) Verify(ctx context.Context, raw string) (Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
