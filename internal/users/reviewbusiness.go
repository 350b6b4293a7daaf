// internal/users/reviewbusiness.go
package users

import (
	"context"
	"errors"
	"strings"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
	"intrale/pkg/idp"
)

type reviewBusinessRequest struct {
	Name     string `json:"name" validate:"required"`
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Code     string `json:"code" validate:"required,min=6"`
}

// ReviewBusinessRegistration is the platform-admin approval gate for tenant
// applications. Approval is a conditional state transition so two reviewers
// racing on the same application produce exactly one winner; provisioning
// the admin account afterwards is idempotent, so a crash between the two
// steps is repaired by re-running the review.
type ReviewBusinessRegistration struct {
	deps Deps
}

func NewReviewBusinessRegistration(deps Deps) *ReviewBusinessRegistration {
	return &ReviewBusinessRegistration{deps: deps}
}

func (f *ReviewBusinessRegistration) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req reviewBusinessRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	email, resp, ok := requireApprovedProfile(ctx, f.deps, headers, business, businesses.RolePlatformAdmin)
	if !ok {
		return resp
	}

	switch err := f.deps.TwoFactor.Verify(ctx, email, req.Code); {
	case err == nil:
	case errors.Is(err, ErrCodeFormat), errors.Is(err, ErrBadCode), errors.Is(err, ErrNoSecret):
		return functions.Unauthorized()
	default:
		f.deps.Log.Errorw("review two-factor", "err", err)
		return functions.Exception("Unable to verify two-factor")
	}

	target, err := f.deps.Businesses.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, businesses.ErrNotFound) {
			return functions.Exception("Business not found")
		}
		f.deps.Log.Errorw("review lookup", "name", req.Name, "err", err)
		return functions.Exception("Unable to review business")
	}
	if target.State != businesses.StatePending {
		return functions.Exception("Business is in wrong state")
	}

	decision := businesses.State(req.Decision)
	if decision == businesses.StateApproved {
		if resp, ok := f.checkNameFree(ctx, target); !ok {
			return resp
		}
	}

	switch err := f.deps.Businesses.UpdateState(ctx, target.Name, businesses.StatePending, decision); {
	case err == nil:
	case errors.Is(err, businesses.ErrStateConflict), errors.Is(err, businesses.ErrNotFound):
		return functions.Exception("Business is in wrong state")
	default:
		f.deps.Log.Errorw("review transition", "name", target.Name, "err", err)
		return functions.Exception("Unable to review business")
	}

	if decision == businesses.StateApproved {
		if resp, ok := f.provisionAdmin(ctx, target); !ok {
			return resp
		}
	}

	f.deps.Log.Infow("business reviewed", "name", target.Name, "decision", req.Decision, "by", email)
	return functions.OKWith(map[string]any{"name": target.Name, "state": req.Decision})
}

// checkNameFree rejects approval when another APPROVED business already
// carries the same name, compared case-insensitively. The application
// stays PENDING.
func (f *ReviewBusinessRegistration) checkNameFree(ctx context.Context, target businesses.Business) (functions.Response, bool) {
	all, err := f.deps.Businesses.Scan(ctx)
	if err != nil {
		f.deps.Log.Errorw("review scan", "err", err)
		return functions.Exception("Unable to review business"), false
	}
	for _, b := range all {
		if b.State == businesses.StateApproved && strings.EqualFold(b.Name, target.Name) {
			return functions.Exception("Business name already in use"), false
		}
	}
	return functions.Response{}, true
}

// provisionAdmin creates the admin account when absent and upserts the
// APPROVED BUSINESS_ADMIN grant. Both legs tolerate re-runs.
func (f *ReviewBusinessRegistration) provisionAdmin(ctx context.Context, target businesses.Business) (functions.Response, bool) {
	exists, err := f.deps.Provider.AccountExists(ctx, target.AdminEmail)
	if err != nil {
		f.deps.Log.Errorw("review account check", "email", target.AdminEmail, "err", err)
		return functions.Exception("Unable to provision admin"), false
	}
	if !exists {
		err := f.deps.Provider.CreateAccount(ctx, target.AdminEmail, map[string]string{
			idp.AttrEmail:    target.AdminEmail,
			idp.AttrProfile:  businesses.RoleBusinessAdmin,
			idp.AttrBusiness: target.PublicID,
		})
		if err != nil && !errors.Is(err, idp.ErrAccountExists) {
			f.deps.Log.Errorw("review account create", "email", target.AdminEmail, "err", err)
			return functions.Exception("Unable to provision admin"), false
		}
	}

	grant := businesses.Profile{
		Email:    target.AdminEmail,
		Business: target.PublicID,
		Role:     businesses.RoleBusinessAdmin,
		State:    businesses.StateApproved,
	}
	if err := f.deps.Profiles.Put(ctx, grant); err != nil {
		f.deps.Log.Errorw("review grant", "email", target.AdminEmail, "err", err)
		return functions.Exception("Unable to provision admin"), false
	}
	return functions.Response{}, true
}
