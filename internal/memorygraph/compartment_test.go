package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/apperr"
	"axons/internal/domain"
)

func TestCreateCompartment_IsIdempotentByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id1, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "first")
	require.NoError(t, err)
	id2, err := svc.CreateCompartment(ctx, "work", domain.Closed, true, "second")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	record, err := svc.GetCompartment(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, string(domain.Closed), record["permeability"])
	assert.Equal(t, "second", record["description"])
}

// TestDeleteCompartment_RequiresReassignment_I5 covers I5: deleting a
// compartment with resident memories is refused unless reassignMemories.
func TestDeleteCompartment_RequiresReassignment_I5(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "")
	require.NoError(t, err)
	id, err := svc.CreateMemory(ctx, "content", "summary", 0.5, domain.Open, nil)
	require.NoError(t, err)
	require.NoError(t, svc.AddMemoryToCompartment(ctx, []string{id}, "work"))

	err = svc.DeleteCompartment(ctx, "work", false)
	assert.True(t, apperr.IsCompartmentInUse(err))

	require.NoError(t, svc.DeleteCompartment(ctx, "work", true))
	_, err = svc.GetCompartment(ctx, "work")
	assert.True(t, apperr.IsNotFound(err))

	memberships, err := svc.store.EdgesFrom(ctx, labelMemory, keyID, id, labelCompartment, relInCompartment)
	require.NoError(t, err)
	assert.Empty(t, memberships, "a reassigned resident should be detached, not deleted")
}

func TestDeleteCompartment_ClearsActiveCompartment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "")
	require.NoError(t, err)
	svc.activeCompartment = "work"

	require.NoError(t, svc.DeleteCompartment(ctx, "work", false))
	assert.Equal(t, "", svc.activeCompartment)
}

func TestUpdateCompartment_MergesNonNilFieldsOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "original")
	require.NoError(t, err)

	closed := domain.Closed
	require.NoError(t, svc.UpdateCompartment(ctx, "work", &closed, nil, nil))

	record, err := svc.GetCompartment(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, string(domain.Closed), record["permeability"])
	assert.Equal(t, "original", record["description"], "description should be untouched by a nil field")
	assert.Equal(t, false, record["allowExternalConnections"])
}

func TestRemoveMemoryFromCompartment_NilRemovesAllMemberships(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "")
	require.NoError(t, err)
	_, err = svc.CreateCompartment(ctx, "personal", domain.Open, false, "")
	require.NoError(t, err)
	id, err := svc.CreateMemory(ctx, "content", "summary", 0.5, domain.Open, nil)
	require.NoError(t, err)
	require.NoError(t, svc.AddMemoryToCompartment(ctx, []string{id}, "work"))
	require.NoError(t, svc.AddMemoryToCompartment(ctx, []string{id}, "personal"))

	require.NoError(t, svc.RemoveMemoryFromCompartment(ctx, []string{id}, nil))

	memberships, err := svc.store.EdgesFrom(ctx, labelMemory, keyID, id, labelCompartment, relInCompartment)
	require.NoError(t, err)
	assert.Empty(t, memberships)
}
