package users

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"intrale/pkg/businesses"
	"intrale/pkg/idp"
)

type harness struct {
	deps     Deps
	stores   *businesses.MemoryStores
	provider *idp.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	stores := businesses.NewMemoryStores()
	provider := idp.NewMemory()
	log := zap.NewNop().Sugar()
	deps := Deps{
		Log:        log,
		Provider:   provider,
		Businesses: stores,
		Users:      stores.Users(),
		Profiles:   stores.Profiles(),
		Registry:   businesses.NewRegistry(stores, "intrale"),
		TwoFactor:  NewTwoFactor(log, stores.Users()),
	}
	return &harness{deps: deps, stores: stores, provider: provider}
}

// authAs registers a token for email and returns the headers a request
// carrying it would have.
func (h *harness) authAs(email string) map[string]string {
	h.provider.AddToken("tok-"+email, idp.User{Username: email, Email: email})
	return map[string]string{"Authorization": "Bearer tok-" + email}
}

// grant records an APPROVED profile for email.
func (h *harness) grant(t *testing.T, email, business, role string) {
	t.Helper()
	p := businesses.Profile{Email: email, Business: business, Role: role, State: businesses.StateApproved}
	if err := h.deps.Profiles.Put(context.Background(), p); err != nil {
		t.Fatalf("grant: %v", err)
	}
}
