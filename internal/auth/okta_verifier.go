package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

const DefaultAudience = "api://default"

// Config holds the identity-provider settings. They are frozen at
// construction; nothing reads them per request.
type Config struct {
	Issuer   string
	ClientID string
	Audience string
}

// OktaVerifier validates access tokens via OIDC discovery and the
// provider's JWKS. Signature, issuer, audience and expiry checks are all
// delegated to the oidc verifier.
type OktaVerifier struct {
	verifier *oidc.IDTokenVerifier
	clientID string
}

// NewOktaVerifier fails fast when issuer or client id is missing; a
// misconfigured deployment must not come up half-guarded.
func NewOktaVerifier(ctx context.Context, cfg Config) (*OktaVerifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("auth: issuer is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("auth: client id is required")
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("auth: oidc provider discovery: %w", err)
	}

	return &OktaVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Audience}),
		clientID: cfg.ClientID,
	}, nil
}

func (v *OktaVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	var raw struct {
		Email  string   `json:"email"`
		Groups []string `json:"groups"`
		Cid    string   `json:"cid"`
	}
	if err := idToken.Claims(&raw); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	// Okta access tokens carry the client id in the cid claim.
	if raw.Cid != "" && raw.Cid != v.clientID {
		return nil, fmt.Errorf("token issued for client %q", raw.Cid)
	}

	groups := raw.Groups
	if groups == nil {
		groups = []string{}
	}

	return &Claims{
		Subject: idToken.Subject,
		Email:   raw.Email,
		Groups:  groups,
	}, nil
}
