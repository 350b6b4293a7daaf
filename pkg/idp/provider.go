// pkg/idp/provider.go
package idp

import (
	"context"
	"errors"
)

// Attribute names mirrored to the identity provider on account creation.
const (
	AttrEmail    = "email"
	AttrProfile  = "profile"
	AttrBusiness = "locale" // provider attribute repurposed for the business list
)

var (
	ErrAccountExists = errors.New("account already exists")
	ErrUnauthorized  = errors.New("token not accepted by identity provider")
)

// User is the provider-side view of an account.
type User struct {
	Username   string
	Email      string
	Attributes map[string]string
}

// Provider is the identity-provider surface this platform consumes:
// attribute lookup by access token and account provisioning by email.
// Token issuance and password lifecycle stay with the provider.
type Provider interface {
	UserByToken(ctx context.Context, accessToken string) (User, error)
	CreateAccount(ctx context.Context, email string, attrs map[string]string) error
	AccountExists(ctx context.Context, email string) (bool, error)
	HasAnyUser(ctx context.Context) (bool, error)
}
