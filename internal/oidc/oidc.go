package oidc

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/responder/responder/internal/config"
	"github.com/responder/responder/pkg/middleware"
)

// Verifier wraps the OIDC provider and token verifier
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a new OIDC verifier for the given issuer and client ID
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &Verifier{provider: provider, verifier: verifier}, nil
}

// IssuerURL returns the Keycloak realm issuer, or the bare URL when no realm
// is configured (older deployments expose the realm path in the URL).
func IssuerURL(cfg config.KeycloakConfig) string {
	if cfg.Realm == "" {
		return cfg.URL
	}
	return strings.TrimRight(cfg.URL, "/") + "/realms/" + cfg.Realm
}

// NewKeycloakVerifier builds a verifier from the Keycloak settings.
func NewKeycloakVerifier(ctx context.Context, cfg config.KeycloakConfig) (*Verifier, error) {
	if cfg.URL == "" || cfg.ClientID == "" {
		return nil, fmt.Errorf("keycloak url and client id are required")
	}
	return NewVerifier(ctx, IssuerURL(cfg), cfg.ClientID)
}

// Verify verifies the provided raw ID token and returns a middleware.Token
func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
