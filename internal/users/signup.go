// internal/users/signup.go
package users

import (
	"context"
	"errors"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
	"intrale/pkg/idp"
)

type signUpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SignUp provisions a provider account and records the matching profile
// grant. One type covers the whole signup family; the dispatch key decides
// the role, the grant's initial state and whether the bootstrap guard runs.
type SignUp struct {
	deps Deps

	role       string
	grantState businesses.State
	// bootstrapOnly restricts the operation to an empty user pool, so the
	// very first platform admin can self-provision exactly once.
	bootstrapOnly bool
	// rejectExisting turns an already-provisioned account into an error
	// instead of continuing to the grant.
	rejectExisting bool
}

func NewSignUp(deps Deps) *SignUp {
	return &SignUp{deps: deps, role: businesses.RoleDefault, grantState: businesses.StateApproved}
}

func NewPlatformAdminSignUp(deps Deps) *SignUp {
	return &SignUp{deps: deps, role: businesses.RolePlatformAdmin, grantState: businesses.StateApproved, bootstrapOnly: true}
}

func NewDeliverySignUp(deps Deps) *SignUp {
	return &SignUp{deps: deps, role: businesses.RoleDelivery, grantState: businesses.StatePending, rejectExisting: true}
}

func (f *SignUp) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req signUpRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	if f.bootstrapOnly {
		populated, err := f.deps.Provider.HasAnyUser(ctx)
		if err != nil {
			f.deps.Log.Errorw("signup bootstrap check", "err", err)
			return functions.Exception("Unable to check existing users")
		}
		if populated {
			return functions.Unauthorized()
		}
	}

	if err := f.provision(ctx, business, req.Email); err != nil {
		if errors.Is(err, idp.ErrAccountExists) {
			if f.rejectExisting {
				return functions.Conflict("Account already exists")
			}
			// Account present is fine; only the grant is new.
		} else {
			f.deps.Log.Errorw("signup provision", "business", business, "email", req.Email, "err", err)
			return functions.Exception("Unable to create account")
		}
	}

	grant := businesses.Profile{Email: req.Email, Business: business, Role: f.role, State: f.grantState}
	if err := f.deps.Profiles.Put(ctx, grant); err != nil {
		f.deps.Log.Errorw("signup grant", "business", business, "email", req.Email, "role", f.role, "err", err)
		return functions.Exception("Unable to record profile")
	}

	f.deps.Log.Infow("account signed up", "business", business, "email", req.Email, "role", f.role, "state", f.grantState)
	return functions.OKWith(map[string]any{"state": string(f.grantState)})
}

// provision mirrors the email/role/business attributes to the provider.
func (f *SignUp) provision(ctx context.Context, business, email string) error {
	return f.deps.Provider.CreateAccount(ctx, email, map[string]string{
		idp.AttrEmail:    email,
		idp.AttrProfile:  f.role,
		idp.AttrBusiness: business,
	})
}
