package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/domain"
)

// TestCreateAndGetMemory_S1 covers S1: store a memory, recall it, and find it
// via search.
func TestCreateAndGetMemory_S1(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id, err := svc.CreateMemory(ctx, "the sky is blue", "sky color", 0.9, domain.Open, nil)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := svc.GetMemory(ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, "the sky is blue", record["content"])
	assert.Equal(t, 1, record["accessCount"])

	found, err := svc.SearchMemories(ctx, "sky", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0]["id"])
}

// TestGetMemory_AccessCountIncrementsByOne_P7 covers P7: every GetMemory call
// bumps accessCount by exactly 1, regardless of applyRetrievalEffects.
func TestGetMemory_AccessCountIncrementsByOne_P7(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id, err := svc.CreateMemory(ctx, "content", "summary", 0.5, domain.Open, nil)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		record, err := svc.GetMemory(ctx, id, true)
		require.NoError(t, err)
		assert.Equal(t, i, record["accessCount"])
	}
}

func TestGetMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.GetMemory(ctx, "missing", false)
	assert.Error(t, err)
}

// TestCreateMemory_CompartmentResolution exercises resolveCompartment's
// nil/explicit/empty-string rule end to end via the resulting membership edge.
func TestCreateMemory_CompartmentResolution(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "")
	require.NoError(t, err)

	svc.activeCompartment = "work"
	idNil, err := svc.CreateMemory(ctx, "a", "a", 0.5, domain.Open, nil)
	require.NoError(t, err)
	residents, err := svc.store.EdgesTo(ctx, labelCompartment, keyName, "work", labelMemory, relInCompartment)
	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.Equal(t, idNil, residents[0].Peer[keyID])

	empty := ""
	idNone, err := svc.CreateMemory(ctx, "b", "b", 0.5, domain.Open, &empty)
	require.NoError(t, err)
	memberships, err := svc.store.EdgesFrom(ctx, labelMemory, keyID, idNone, labelCompartment, relInCompartment)
	require.NoError(t, err)
	assert.Empty(t, memberships, "explicit empty string suppresses compartment assignment")
}

// TestApplyRetrievalEffects_OnlyTouchesIncomingEdges covers spec §9 item 4:
// retrieval strengthens edges pointing INTO the retrieved memory, not its
// outgoing edges.
func TestApplyRetrievalEffects_OnlyTouchesIncomingEdges(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateMemory(ctx, "a", "a", 0.5, domain.Open, nil)
	require.NoError(t, err)
	b, err := svc.CreateMemory(ctx, "b", "b", 0.5, domain.Open, nil)
	require.NoError(t, err)

	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo, map[string]any{"strength": 0.4})
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, b, labelMemory, keyID, a, relRelatesTo, map[string]any{"strength": 0.4})
	require.NoError(t, err)

	require.NoError(t, svc.applyRetrievalEffects(ctx, b, nil))

	incoming, _, err := svc.store.GetEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo)
	require.NoError(t, err)
	assert.Greater(t, incoming["strength"].(float64), 0.4, "edge a->b (incoming to b) should have strengthened")

	outgoing, _, err := svc.store.GetEdge(ctx, labelMemory, keyID, b, labelMemory, keyID, a, relRelatesTo)
	require.NoError(t, err)
	assert.Equal(t, 0.4, outgoing["strength"], "edge b->a (outgoing from b) should be untouched")
}
