// internal/users/profiles.go
package users

import (
	"context"
	"errors"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
	"intrale/pkg/idp"
)

type assignProfileRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=PLATFORM_ADMIN BUSINESS_ADMIN SALER DELIVERY DEFAULT"`
}

// AssignProfile is the platform-admin escape hatch: upsert any role grant,
// APPROVED, within the business in the path.
type AssignProfile struct {
	deps Deps
}

func NewAssignProfile(deps Deps) *AssignProfile {
	return &AssignProfile{deps: deps}
}

func (f *AssignProfile) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req assignProfileRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	admin, resp, ok := requireApprovedProfile(ctx, f.deps, headers, business, businesses.RolePlatformAdmin)
	if !ok {
		return resp
	}

	grant := businesses.Profile{Email: req.Email, Business: business, Role: req.Role, State: businesses.StateApproved}
	if err := f.deps.Profiles.Put(ctx, grant); err != nil {
		f.deps.Log.Errorw("assign profile", "business", business, "email", req.Email, "role", req.Role, "err", err)
		return functions.Exception("Unable to assign profile")
	}

	f.deps.Log.Infow("profile assigned", "business", business, "email", req.Email, "role", req.Role, "by", admin)
	return functions.OK()
}

type registerSalerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterSaler lets a business admin enroll a sales account. An APPROVED
// saler grant for the same email is a conflict, not an upsert.
type RegisterSaler struct {
	deps Deps
}

func NewRegisterSaler(deps Deps) *RegisterSaler {
	return &RegisterSaler{deps: deps}
}

func (f *RegisterSaler) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req registerSalerRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	_, resp, ok := requireApprovedProfile(ctx, f.deps, headers, business, businesses.RoleBusinessAdmin)
	if !ok {
		return resp
	}

	existing, err := f.deps.Profiles.Get(ctx, req.Email, business, businesses.RoleSaler)
	switch {
	case err == nil && existing.State == businesses.StateApproved:
		return functions.Conflict("Saler already registered")
	case err != nil && !errors.Is(err, businesses.ErrNotFound):
		f.deps.Log.Errorw("saler lookup", "business", business, "email", req.Email, "err", err)
		return functions.Exception("Unable to register saler")
	}

	err = f.deps.Provider.CreateAccount(ctx, req.Email, map[string]string{
		idp.AttrEmail:    req.Email,
		idp.AttrProfile:  businesses.RoleSaler,
		idp.AttrBusiness: business,
	})
	if err != nil && !errors.Is(err, idp.ErrAccountExists) {
		f.deps.Log.Errorw("saler account", "business", business, "email", req.Email, "err", err)
		return functions.Exception("Unable to register saler")
	}

	grant := businesses.Profile{Email: req.Email, Business: business, Role: businesses.RoleSaler, State: businesses.StateApproved}
	if err := f.deps.Profiles.Put(ctx, grant); err != nil {
		f.deps.Log.Errorw("saler grant", "business", business, "email", req.Email, "err", err)
		return functions.Exception("Unable to register saler")
	}

	f.deps.Log.Infow("saler registered", "business", business, "email", req.Email)
	return functions.OK()
}
