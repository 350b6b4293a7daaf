// internal/users/registerbusiness.go
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
)

type registerBusinessRequest struct {
	Name                 string `json:"name" validate:"required,min=7"`
	EmailAdmin           string `json:"emailAdmin" validate:"required,email"`
	Description          string `json:"description" validate:"required"`
	AutoAcceptDeliveries bool   `json:"autoAcceptDeliveries"`
}

// RegisterBusiness files a tenant application. The business lands PENDING;
// nothing becomes routable until a platform admin reviews it.
type RegisterBusiness struct {
	deps Deps
}

func NewRegisterBusiness(deps Deps) *RegisterBusiness {
	return &RegisterBusiness{deps: deps}
}

func (f *RegisterBusiness) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req registerBusinessRequest
	if resp, ok := parseBody(body, &req); !ok {
		return resp
	}

	existing, err := f.deps.Businesses.GetByName(ctx, req.Name)
	switch {
	case err == nil:
		if existing.State == businesses.StatePending && strings.EqualFold(existing.AdminEmail, req.EmailAdmin) {
			return functions.Validation("Business registration already pending")
		}
		// A same-named record in any other combination is resolved at
		// review time, not here.
	case errors.Is(err, businesses.ErrNotFound):
	default:
		f.deps.Log.Errorw("register lookup", "name", req.Name, "err", err)
		return functions.Exception("Unable to register business")
	}

	publicID, err := f.uniquePublicID(ctx, req.Name)
	if err != nil {
		f.deps.Log.Errorw("register slug", "name", req.Name, "err", err)
		return functions.Exception("Unable to register business")
	}

	b := businesses.Business{
		ID:                   uuid.NewString(),
		PublicID:             publicID,
		Name:                 req.Name,
		Description:          req.Description,
		AdminEmail:           req.EmailAdmin,
		AutoAcceptDeliveries: req.AutoAcceptDeliveries,
		State:                businesses.StatePending,
	}
	if err := f.deps.Businesses.Put(ctx, b); err != nil {
		f.deps.Log.Errorw("register put", "name", req.Name, "err", err)
		return functions.Exception("Unable to register business")
	}

	f.deps.Log.Infow("business registered", "name", req.Name, "publicId", publicID)
	return functions.OKWith(map[string]any{"publicId": publicID, "state": string(businesses.StatePending)})
}

// uniquePublicID slugs the name and, when the slug is already taken by any
// business in any state, suffixes a uuid fragment.
func (f *RegisterBusiness) uniquePublicID(ctx context.Context, name string) (string, error) {
	slug := businesses.Slugify(name)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}
	_, err := f.deps.Businesses.GetByPublicID(ctx, slug)
	if errors.Is(err, businesses.ErrNotFound) {
		return slug, nil
	}
	if err != nil {
		return "", err
	}
	return slug + "-" + uuid.NewString()[:8], nil
}
