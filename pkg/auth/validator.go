// pkg/auth/validator.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims is the decoded, verified token material operations may consult.
// Derived per request, never persisted.
type Claims struct {
	Subject  string
	Username string
	Email    string
	ClientID string
	TokenUse string
}

// Validator verifies a bearer token and returns its claims.
type Validator interface {
	Validate(ctx context.Context, token string) (Claims, error)
}

var ErrInvalidToken = errors.New("invalid token")

// BearerToken extracts the token from an Authorization-style header map.
// A "Bearer " prefix is optional; some callers send the raw token.
func BearerToken(headers map[string]string) string {
	authz := headers["Authorization"]
	if authz == "" {
		authz = headers["authorization"]
	}
	authz = strings.TrimSpace(authz)
	if len(authz) >= 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return authz
}

// jwksCache caches signing-key sets per URL. Holds only public
// verification material.
type jwksCache struct {
	mu   sync.RWMutex
	sets map[string]cachedJWKS
}

type cachedJWKS struct {
	set     jwk.Set
	expires time.Time
}

func (c *jwksCache) get(ctx context.Context, url string, ttl time.Duration) (jwk.Set, error) {
	c.mu.RLock()
	if e, ok := c.sets[url]; ok && time.Now().Before(e.expires) {
		c.mu.RUnlock()
		return e.set, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sets == nil {
		c.sets = map[string]cachedJWKS{}
	}
	if e, ok := c.sets[url]; ok && time.Now().Before(e.expires) {
		return e.set, nil
	}
	set, err := jwk.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	c.sets[url] = cachedJWKS{set: set, expires: time.Now().Add(ttl)}
	return set, nil
}

// claimsFrom pulls the fields this platform cares about out of a parsed
// token and enforces the access-token shape: token_use must be "access"
// and client_id must match the configured app client.
func claimsFrom(tok jwt.Token, wantClientID string) (Claims, error) {
	c := Claims{Subject: tok.Subject()}
	if v, ok := tok.Get("token_use"); ok {
		c.TokenUse, _ = v.(string)
	}
	if v, ok := tok.Get("client_id"); ok {
		c.ClientID, _ = v.(string)
	}
	if v, ok := tok.Get("username"); ok {
		c.Username, _ = v.(string)
	}
	if v, ok := tok.Get("email"); ok {
		c.Email, _ = v.(string)
	}
	if c.TokenUse != "access" {
		return Claims{}, fmt.Errorf("%w: token_use is not access", ErrInvalidToken)
	}
	if c.ClientID != wantClientID {
		return Claims{}, fmt.Errorf("%w: client_id mismatch", ErrInvalidToken)
	}
	return c, nil
}
