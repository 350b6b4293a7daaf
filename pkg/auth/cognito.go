// pkg/auth/cognito.go
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.uber.org/zap"

	"intrale/pkg/config"
)

// CognitoValidator verifies tokens against the identity provider's
// published signing-key set. Keys are cached per URL with a TTL; a fetch
// timeout surfaces as a verification failure, never an unhandled fault.
type CognitoValidator struct {
	cfg   config.Config
	log   *zap.SugaredLogger
	cache *jwksCache
}

func NewCognitoValidator(cfg config.Config, log *zap.SugaredLogger) *CognitoValidator {
	return &CognitoValidator{cfg: cfg, log: log, cache: &jwksCache{}}
}

func (v *CognitoValidator) Validate(ctx context.Context, token string) (Claims, error) {
	issuer := v.cfg.Issuer()

	fetchCtx, cancel := context.WithTimeout(ctx, v.cfg.IdPTimeout)
	defer cancel()
	set, err := v.cache.get(fetchCtx, v.cfg.JWKSURL(), v.cfg.JWKSCacheTTL)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: jwks fetch failed: %v", ErrInvalidToken, err)
	}

	tok, err := jwt.Parse([]byte(token),
		jwt.WithKeySet(set),
		jwt.WithIssuer(issuer),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(30*time.Second),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claimsFrom(tok, v.cfg.CognitoClientID)
}
