// internal/users/autoaccept.go
package users

import (
	"context"
	"errors"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
)

type configAutoAcceptRequest struct {
	AutoAcceptDeliveries *bool `json:"autoAcceptDeliveries" validate:"required"`
}

// ConfigAutoAcceptDeliveries toggles whether delivery join requests for the
// business in the path are approved without review.
type ConfigAutoAcceptDeliveries struct {
	deps Deps
}

func NewConfigAutoAcceptDeliveries(deps Deps) *ConfigAutoAcceptDeliveries {
	return &ConfigAutoAcceptDeliveries{deps: deps}
}

func (f *ConfigAutoAcceptDeliveries) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req configAutoAcceptRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	admin, resp, ok := requireApprovedProfile(ctx, f.deps, headers, business, businesses.RoleBusinessAdmin)
	if !ok {
		return resp
	}

	target, err := f.deps.Businesses.GetByPublicID(ctx, business)
	if err != nil {
		if errors.Is(err, businesses.ErrNotFound) {
			return functions.Exception("Business not found")
		}
		f.deps.Log.Errorw("autoaccept lookup", "business", business, "err", err)
		return functions.Exception("Unable to update configuration")
	}

	target.AutoAcceptDeliveries = *req.AutoAcceptDeliveries
	if err := f.deps.Businesses.Update(ctx, target); err != nil {
		f.deps.Log.Errorw("autoaccept update", "business", business, "err", err)
		return functions.Exception("Unable to update configuration")
	}

	f.deps.Log.Infow("auto-accept updated", "business", business, "value", *req.AutoAcceptDeliveries, "by", admin)
	return functions.OKWith(map[string]any{"autoAcceptDeliveries": *req.AutoAcceptDeliveries})
}
