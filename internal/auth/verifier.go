// Package auth verifies bearer tokens against the configured identity
// provider and models the authenticated principal attached to a request.
package auth

import "context"

// Principal is the normalized identity attached to a request after a token
// has been verified. It lives for one request and is never persisted.
type Principal struct {
	Subject string
	Email   string
	Groups  []string
}

// HasGroup reports exact, case-sensitive membership.
func (p Principal) HasGroup(group string) bool {
	for _, g := range p.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Claims is the typed subset of token claims this service consumes.
// Groups is always non-nil after verification; tokens without a groups
// claim yield an empty slice.
type Claims struct {
	Subject string
	Email   string
	Groups  []string
}

// Verifier validates a raw bearer token. Verification may block on a
// network round-trip (JWKS fetch), so it takes a context.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}
