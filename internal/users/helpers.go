// internal/users/helpers.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"intrale/pkg/auth"
	"intrale/pkg/businesses"
	"intrale/pkg/functions"
	"intrale/pkg/idp"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodes and validates a typed request payload, reporting the
// first offending field by name.
func parseBody[T any](body string, out *T) (functions.Response, bool) {
	if strings.TrimSpace(body) == "" {
		return functions.Validation("Request body is required"), false
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return functions.Validation("Request body is not valid JSON"), false
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return functions.Validation("Invalid field " + verrs[0].Field()), false
		}
		return functions.Validation("Invalid request"), false
	}
	return functions.Response{}, true
}

// callerEmail resolves the request's identity through the provider using
// the bearer token the security gate already verified. The provider is
// authoritative for the email attribute; tokens may omit it.
func callerEmail(ctx context.Context, provider idp.Provider, headers map[string]string) (string, functions.Response, bool) {
	token := auth.BearerToken(headers)
	user, err := provider.UserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, idp.ErrUnauthorized) {
			return "", functions.Unauthorized(), false
		}
		return "", functions.Exception("Unable to resolve user"), false
	}
	email := user.Email
	if email == "" {
		email = user.Attributes[idp.AttrEmail]
	}
	if email == "" {
		return "", functions.Exception("Email not found"), false
	}
	return email, functions.Response{}, true
}

// requireApprovedProfile resolves the caller and demands an APPROVED grant
// for the given role within the given business. Missing and non-approved
// grants are indistinguishable to the caller.
func requireApprovedProfile(ctx context.Context, d Deps, headers map[string]string, business, role string) (string, functions.Response, bool) {
	email, resp, ok := callerEmail(ctx, d.Provider, headers)
	if !ok {
		return "", resp, false
	}
	profile, err := d.Profiles.Get(ctx, email, business, role)
	if err != nil {
		if errors.Is(err, businesses.ErrNotFound) {
			return "", functions.Unauthorized(), false
		}
		return "", functions.Exception("Unable to resolve profile"), false
	}
	if profile.State != businesses.StateApproved {
		return "", functions.Unauthorized(), false
	}
	return email, functions.Response{}, true
}
