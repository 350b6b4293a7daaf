// internal/users/join.go
package users

import (
	"context"
	"errors"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
)

// RequestJoinBusiness files a DELIVERY grant for the caller against the
// business in the path. When the business auto-accepts deliveries the grant
// lands APPROVED immediately, otherwise PENDING for an admin review.
type RequestJoinBusiness struct {
	deps Deps
}

func NewRequestJoinBusiness(deps Deps) *RequestJoinBusiness {
	return &RequestJoinBusiness{deps: deps}
}

func (f *RequestJoinBusiness) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	email, resp, ok := callerEmail(ctx, f.deps.Provider, headers)
	if !ok {
		return resp
	}

	target, err := f.deps.Businesses.GetByPublicID(ctx, business)
	if err != nil {
		if errors.Is(err, businesses.ErrNotFound) {
			return functions.Exception("Business not found")
		}
		f.deps.Log.Errorw("join lookup", "business", business, "err", err)
		return functions.Exception("Unable to request join")
	}

	state := businesses.StatePending
	if target.AutoAcceptDeliveries {
		state = businesses.StateApproved
	}

	grant := businesses.Profile{Email: email, Business: business, Role: businesses.RoleDelivery, State: state}
	if err := f.deps.Profiles.Put(ctx, grant); err != nil {
		f.deps.Log.Errorw("join grant", "business", business, "email", email, "err", err)
		return functions.Exception("Unable to request join")
	}

	f.deps.Log.Infow("join requested", "business", business, "email", email, "state", state)
	return functions.OKWith(map[string]any{"state": string(state)})
}

type reviewJoinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

// ReviewJoinBusiness lets a business admin settle a pending join request.
type ReviewJoinBusiness struct {
	deps Deps
}

func NewReviewJoinBusiness(deps Deps) *ReviewJoinBusiness {
	return &ReviewJoinBusiness{deps: deps}
}

func (f *ReviewJoinBusiness) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req reviewJoinRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	_, resp, ok := requireApprovedProfile(ctx, f.deps, headers, business, businesses.RoleBusinessAdmin)
	if !ok {
		return resp
	}

	grant, err := f.deps.Profiles.Get(ctx, req.Email, business, businesses.RoleDelivery)
	if err != nil {
		if errors.Is(err, businesses.ErrNotFound) {
			return functions.Exception("Request not found")
		}
		f.deps.Log.Errorw("join review lookup", "business", business, "email", req.Email, "err", err)
		return functions.Exception("Unable to review join")
	}

	grant.State = businesses.State(req.Decision)
	if err := f.deps.Profiles.Update(ctx, grant); err != nil {
		f.deps.Log.Errorw("join review update", "business", business, "email", req.Email, "err", err)
		return functions.Exception("Unable to review join")
	}

	f.deps.Log.Infow("join reviewed", "business", business, "email", req.Email, "decision", req.Decision)
	return functions.OKWith(map[string]any{"email": req.Email, "state": req.Decision})
}
