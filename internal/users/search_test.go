package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrale/pkg/businesses"
)

func seedSearchable(t *testing.T, h *harness) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.stores.Put(ctx, businesses.Business{
		Name: "Panadería San José", PublicID: "panaderia-san-jose",
		Description: "bakery and coffee", State: businesses.StateApproved,
	}))
	require.NoError(t, h.stores.Put(ctx, businesses.Business{
		Name: "Acme Holdings", PublicID: "acme-holdings",
		Description: "everything else", State: businesses.StateApproved,
	}))
	require.NoError(t, h.stores.Put(ctx, businesses.Business{
		Name: "Hidden Pending", PublicID: "hidden-pending",
		Description: "not reviewed yet", State: businesses.StatePending,
	}))
}

func TestSearchBusinessesListsApprovedOnly(t *testing.T) {
	h := newHarness(t)
	seedSearchable(t, h)

	resp := NewSearchBusinesses(h.deps).Execute(context.Background(), "intrale", "businesses/search", nil, "")
	require.Equal(t, http.StatusOK, resp.Status)

	results, ok := resp.Fields["businesses"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "hidden-pending", r["publicId"])
	}
}

func TestSearchBusinessesFiltersByQuery(t *testing.T) {
	h := newHarness(t)
	seedSearchable(t, h)

	resp := NewSearchBusinesses(h.deps).Execute(context.Background(), "intrale", "businesses/search", nil, `{"query":"bakery"}`)
	require.Equal(t, http.StatusOK, resp.Status)

	results, ok := resp.Fields["businesses"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, "panaderia-san-jose", results[0]["publicId"])
}

func TestSearchBusinessesNoMatches(t *testing.T) {
	h := newHarness(t)
	seedSearchable(t, h)

	resp := NewSearchBusinesses(h.deps).Execute(context.Background(), "intrale", "businesses/search", nil, `{"query":"zzz"}`)
	require.Equal(t, http.StatusOK, resp.Status)

	results, ok := resp.Fields["businesses"].([]map[string]any)
	require.True(t, ok)
	assert.Empty(t, results)
}
