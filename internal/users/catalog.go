// internal/users/catalog.go
package users

import (
	"intrale/pkg/auth"
	"intrale/pkg/functions"
)

// Catalog builds the full operation registry. The signup family, the
// business application and the public directory search take no bearer
// token: an account is the precondition for having one. Everything else
// sits behind the gate; per-role authorization stays inside the operations.
func Catalog(deps Deps, validator auth.Validator) *functions.Registry {
	r := functions.NewRegistry()

	secured := func(next functions.Function) functions.Function {
		return auth.NewSecured(validator, deps.Log, next)
	}

	// The platform-admin variant is held by its first-user-only guard and
	// the delivery variant by its existing-account rejection, not by a
	// token check.
	r.Register("signup", NewSignUp(deps))
	r.Register("signup/platformadmin", NewPlatformAdminSignUp(deps))
	r.Register("signup/delivery", NewDeliverySignUp(deps))

	r.Register("register", NewRegisterBusiness(deps))
	r.Register("register/review", secured(NewReviewBusinessRegistration(deps)))

	r.Register("join", secured(NewRequestJoinBusiness(deps)))
	r.Register("join/review", secured(NewReviewJoinBusiness(deps)))

	r.Register("profile/assign", secured(NewAssignProfile(deps)))
	r.Register("saler/register", secured(NewRegisterSaler(deps)))
	r.Register("businesses/search", NewSearchBusinesses(deps))
	r.Register("config/autoaccept", secured(NewConfigAutoAcceptDeliveries(deps)))

	r.Register("twofactor/setup", secured(NewTwoFactorSetup(deps)))
	r.Register("twofactor/verify", secured(NewTwoFactorVerify(deps)))

	return r
}
