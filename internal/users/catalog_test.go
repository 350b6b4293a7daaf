package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrale/pkg/auth"
)

type allowAllValidator struct{}

func (allowAllValidator) Validate(context.Context, string) (auth.Claims, error) {
	return auth.Claims{}, nil
}

func TestCatalogRegistersEveryOperation(t *testing.T) {
	h := newHarness(t)
	catalog := Catalog(h.deps, allowAllValidator{})

	expected := []string{
		"businesses/search",
		"config/autoaccept",
		"join",
		"join/review",
		"profile/assign",
		"register",
		"register/review",
		"saler/register",
		"signup",
		"signup/delivery",
		"signup/platformadmin",
		"twofactor/setup",
		"twofactor/verify",
	}
	assert.Equal(t, expected, catalog.Keys())
}

func TestCatalogGatesSecuredOperations(t *testing.T) {
	h := newHarness(t)
	catalog := Catalog(h.deps, allowAllValidator{})

	// No bearer token: every gated operation answers 401 before its logic.
	gated := []string{
		"config/autoaccept",
		"join",
		"join/review",
		"profile/assign",
		"register/review",
		"saler/register",
		"twofactor/setup",
		"twofactor/verify",
	}
	for _, key := range gated {
		fn, ok := catalog.Lookup(key)
		require.True(t, ok, key)
		resp := fn.Execute(context.Background(), "intrale", key, map[string]string{}, "{}")
		assert.Equal(t, http.StatusUnauthorized, resp.Status, key)
	}
}

func TestCatalogRegisterIsPublic(t *testing.T) {
	h := newHarness(t)
	catalog := Catalog(h.deps, allowAllValidator{})

	fn, ok := catalog.Lookup("register")
	require.True(t, ok)
	body := `{"name":"Acme Holdings","emailAdmin":"admin@acme.co","description":"stuff"}`
	resp := fn.Execute(context.Background(), "intrale", "register", map[string]string{}, body)
	assert.Equal(t, http.StatusOK, resp.Status, resp.Message())
}

func TestCatalogSignUpTakesNoToken(t *testing.T) {
	h := newHarness(t)
	catalog := Catalog(h.deps, allowAllValidator{})

	fn, ok := catalog.Lookup("signup")
	require.True(t, ok)
	resp := fn.Execute(context.Background(), "intrale", "signup", map[string]string{}, `{"email":"new@user.co"}`)
	assert.Equal(t, http.StatusOK, resp.Status, resp.Message())
}

func TestCatalogFirstPlatformAdminBootstrapsWithoutToken(t *testing.T) {
	h := newHarness(t)
	catalog := Catalog(h.deps, allowAllValidator{})

	fn, ok := catalog.Lookup("signup/platformadmin")
	require.True(t, ok)

	// Empty pool, no Authorization header: the very first admin must be
	// able to self-provision, there is nobody to issue a token yet.
	resp := fn.Execute(context.Background(), "intrale", "signup/platformadmin", map[string]string{}, `{"email":"root@intrale.co"}`)
	require.Equal(t, http.StatusOK, resp.Status, resp.Message())

	// Once any account exists, the same tokenless call is refused.
	resp = fn.Execute(context.Background(), "intrale", "signup/platformadmin", map[string]string{}, `{"email":"mallory@evil.co"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestCatalogSearchIsPublic(t *testing.T) {
	h := newHarness(t)
	catalog := Catalog(h.deps, allowAllValidator{})

	fn, ok := catalog.Lookup("businesses/search")
	require.True(t, ok)
	resp := fn.Execute(context.Background(), "intrale", "businesses/search", map[string]string{}, "")
	assert.Equal(t, http.StatusOK, resp.Status, resp.Message())
}
