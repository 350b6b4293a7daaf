// internal/users/deps.go
package users

import (
	"go.uber.org/zap"

	"intrale/pkg/businesses"
	"intrale/pkg/idp"
)

// Deps bundles what the operations share. Built once in main and handed to
// Catalog; individual operations pick the pieces they need.
type Deps struct {
	Log        *zap.SugaredLogger
	Provider   idp.Provider
	Businesses businesses.BusinessStore
	Users      businesses.UserStore
	Profiles   businesses.ProfileStore
	Registry   *businesses.Registry
	TwoFactor  *TwoFactor
}
