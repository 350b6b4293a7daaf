// pkg/auth/secured.go
package auth

import (
	"context"

	"go.uber.org/zap"

	"intrale/pkg/functions"
)

// Secured wraps an operation so its logic only runs behind a verified
// bearer token. Missing or invalid tokens answer Unauthorized; validation
// errors never escape as 500s.
type Secured struct {
	validator Validator
	log       *zap.SugaredLogger
	next      functions.Function
}

func NewSecured(validator Validator, log *zap.SugaredLogger, next functions.Function) *Secured {
	return &Secured{validator: validator, log: log, next: next}
}

func (s *Secured) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	token := BearerToken(headers)
	if token == "" {
		return functions.Unauthorized()
	}
	if _, err := s.validator.Validate(ctx, token); err != nil {
		s.log.Warnw("token rejected", "function", function, "err", err)
		return functions.Unauthorized()
	}
	return s.next.Execute(ctx, business, function, headers, body)
}
