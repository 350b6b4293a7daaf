package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrale/pkg/businesses"
)

func approvedBusiness(t *testing.T, h *harness, publicID string, autoAccept bool) {
	t.Helper()
	err := h.stores.Put(context.Background(), businesses.Business{
		Name: publicID, PublicID: publicID,
		AutoAcceptDeliveries: autoAccept, State: businesses.StateApproved,
	})
	require.NoError(t, err)
}

func TestRequestJoinAutoAccept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	approvedBusiness(t, h, "acme", true)
	headers := h.authAs("rider@x.co")

	resp := NewRequestJoinBusiness(h.deps).Execute(ctx, "acme", "join", headers, "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "APPROVED", resp.Fields["state"])

	grant, err := h.deps.Profiles.Get(ctx, "rider@x.co", "acme", businesses.RoleDelivery)
	require.NoError(t, err)
	assert.Equal(t, businesses.StateApproved, grant.State)
}

func TestRequestJoinPendingWhenNotAutoAccept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	approvedBusiness(t, h, "acme", false)
	headers := h.authAs("rider@x.co")

	resp := NewRequestJoinBusiness(h.deps).Execute(ctx, "acme", "join", headers, "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "PENDING", resp.Fields["state"])
}

func TestRequestJoinUnknownToken(t *testing.T) {
	h := newHarness(t)
	approvedBusiness(t, h, "acme", false)

	headers := map[string]string{"Authorization": "Bearer not-registered"}
	resp := NewRequestJoinBusiness(h.deps).Execute(context.Background(), "acme", "join", headers, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestRequestJoinMissingBusiness(t *testing.T) {
	h := newHarness(t)
	headers := h.authAs("rider@x.co")

	resp := NewRequestJoinBusiness(h.deps).Execute(context.Background(), "ghost", "join", headers, "")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Business not found", resp.Message())
}

func TestReviewJoinApproves(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	approvedBusiness(t, h, "acme", false)
	headers := h.authAs("boss@acme.co")
	h.grant(t, "boss@acme.co", "acme", businesses.RoleBusinessAdmin)

	riderHeaders := h.authAs("rider@x.co")
	resp := NewRequestJoinBusiness(h.deps).Execute(ctx, "acme", "join", riderHeaders, "")
	require.Equal(t, http.StatusOK, resp.Status)

	body := `{"email":"rider@x.co","decision":"APPROVED"}`
	resp = NewReviewJoinBusiness(h.deps).Execute(ctx, "acme", "join/review", headers, body)
	require.Equal(t, http.StatusOK, resp.Status, resp.Message())

	grant, err := h.deps.Profiles.Get(ctx, "rider@x.co", "acme", businesses.RoleDelivery)
	require.NoError(t, err)
	assert.Equal(t, businesses.StateApproved, grant.State)
}

func TestReviewJoinMissingRequest(t *testing.T) {
	h := newHarness(t)
	approvedBusiness(t, h, "acme", false)
	headers := h.authAs("boss@acme.co")
	h.grant(t, "boss@acme.co", "acme", businesses.RoleBusinessAdmin)

	body := `{"email":"nobody@x.co","decision":"APPROVED"}`
	resp := NewReviewJoinBusiness(h.deps).Execute(context.Background(), "acme", "join/review", headers, body)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Request not found", resp.Message())
}

func TestReviewJoinRequiresBusinessAdmin(t *testing.T) {
	h := newHarness(t)
	approvedBusiness(t, h, "acme", false)
	headers := h.authAs("random@x.co")

	body := `{"email":"rider@x.co","decision":"APPROVED"}`
	resp := NewReviewJoinBusiness(h.deps).Execute(context.Background(), "acme", "join/review", headers, body)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}
