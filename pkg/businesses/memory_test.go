package businesses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusinessLookups(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()

	_, err := stores.GetByName(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, stores.Put(ctx, Business{Name: "Acme Corp", PublicID: "acme", State: StatePending}))

	byName, err := stores.GetByName(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "acme", byName.PublicID)

	byID, err := stores.GetByPublicID(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", byID.Name)
}

func TestMemoryUpdateStateIsConditional(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()
	require.NoError(t, stores.Put(ctx, Business{Name: "Acme Corp", PublicID: "acme", State: StatePending}))

	require.NoError(t, stores.UpdateState(ctx, "Acme Corp", StatePending, StateApproved))

	// Second reviewer loses: the record is no longer PENDING.
	err := stores.UpdateState(ctx, "Acme Corp", StatePending, StateRejected)
	assert.ErrorIs(t, err, ErrStateConflict)

	got, err := stores.GetByName(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, StateApproved, got.State)

	err = stores.UpdateState(ctx, "missing", StatePending, StateApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfileKeyIsTriple(t *testing.T) {
	stores := NewMemoryStores()
	profiles := stores.Profiles()
	ctx := context.Background()

	require.NoError(t, profiles.Put(ctx, Profile{Email: "a@b.co", Business: "acme", Role: RoleDelivery, State: StatePending}))
	require.NoError(t, profiles.Put(ctx, Profile{Email: "a@b.co", Business: "acme", Role: RoleSaler, State: StateApproved}))

	delivery, err := profiles.Get(ctx, "a@b.co", "acme", RoleDelivery)
	require.NoError(t, err)
	assert.Equal(t, StatePending, delivery.State)

	saler, err := profiles.Get(ctx, "a@b.co", "acme", RoleSaler)
	require.NoError(t, err)
	assert.Equal(t, StateApproved, saler.State)

	_, err = profiles.Get(ctx, "a@b.co", "other", RoleSaler)
	assert.ErrorIs(t, err, ErrNotFound)
}
