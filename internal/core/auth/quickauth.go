// Package auth handles the session boundary of the API surface: verifying
// Farcaster Quick Auth tokens presented at login and minting the session
// tokens the mini-app uses for every subsequent call. Token acquisition on
// the client is an external capability; the token arrives here opaque.
package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// QuickAuthVerifier validates a Farcaster Quick Auth JWT and returns the
// fid it asserts.
type QuickAuthVerifier interface {
	Verify(ctx context.Context, token, domain string) (int64, error)
}

// jwksVerifier verifies Quick Auth tokens against the auth server's
// published JWKS. Keys are fetched through a jwk.Cache so rotation is
// picked up without redeploys.
type jwksVerifier struct {
	jwksURL string
	issuer  string
	cache   *jwk.Cache
}

// NewQuickAuthVerifier creates a verifier for the given auth server.
func NewQuickAuthVerifier(ctx context.Context, jwksURL, issuer string) (QuickAuthVerifier, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL); err != nil {
		return nil, fmt.Errorf("failed to register JWKS endpoint: %w", err)
	}
	return &jwksVerifier{
		jwksURL: jwksURL,
		issuer:  issuer,
		cache:   cache,
	}, nil
}

// Verify checks signature, issuer, expiry and audience (the mini-app
// domain), and returns the fid from the subject claim.
func (v *jwksVerifier) Verify(ctx context.Context, token, domain string) (int64, error) {
	keySet, err := v.cache.Get(ctx, v.jwksURL)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(domain),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	fid, err := strconv.ParseInt(parsed.Subject(), 10, 64)
	if err != nil || fid <= 0 {
		return 0, fmt.Errorf("%w: subject is not a fid", ErrInvalidToken)
	}
	return fid, nil
}
