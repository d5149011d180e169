package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/domain"
)

// TestGetRelatedMemories_FailSafePermeability_S4 covers S4: even when one
// side is OPEN, data cannot flow unless both directions clear, so
// get_related_memories respects that fail-safe asymmetry.
func TestGetRelatedMemories_FailSafePermeability_S4(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	closedID, err := svc.CreateMemory(ctx, "closed content", "s", 0.5, domain.Closed, nil)
	require.NoError(t, err)
	openID, err := svc.CreateMemory(ctx, "open content", "s", 0.5, domain.Open, nil)
	require.NoError(t, err)

	conceptID, err := svc.CreateConcept(ctx, "shared", "")
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, closedID, labelConcept, keyName, conceptID, relHasConcept, nil)
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, openID, labelConcept, keyName, conceptID, relHasConcept, nil)
	require.NoError(t, err)

	related, err := svc.GetRelatedMemories(ctx, openID, 10, true)
	require.NoError(t, err)
	for _, r := range related {
		assert.NotEqual(t, closedID, r[keyID], "open requester should not receive a closed candidate despite being open itself")
	}
}

// TestGetRelatedMemories_OsmoticAsymmetry_S5 covers S5: an OSMOTIC_INWARD
// memory can see an OSMOTIC_OUTWARD memory's content flowing to it, but the
// OSMOTIC_OUTWARD memory cannot see back into the inward one.
func TestGetRelatedMemories_OsmoticAsymmetry_S5(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	mOut, err := svc.CreateMemory(ctx, "outward content", "s", 0.5, domain.OsmoticOutward, nil)
	require.NoError(t, err)
	mIn, err := svc.CreateMemory(ctx, "inward content", "s", 0.5, domain.OsmoticInward, nil)
	require.NoError(t, err)

	conceptID, err := svc.CreateConcept(ctx, "shared", "")
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, mOut, labelConcept, keyName, conceptID, relHasConcept, nil)
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, mIn, labelConcept, keyName, conceptID, relHasConcept, nil)
	require.NoError(t, err)

	fromIn, err := svc.GetRelatedMemories(ctx, mIn, 10, true)
	require.NoError(t, err)
	var sawOut bool
	for _, r := range fromIn {
		if r[keyID] == mOut {
			sawOut = true
		}
	}
	assert.True(t, sawOut, "an OSMOTIC_INWARD requester should see an OSMOTIC_OUTWARD candidate")

	fromOut, err := svc.GetRelatedMemories(ctx, mOut, 10, true)
	require.NoError(t, err)
	for _, r := range fromOut {
		assert.NotEqual(t, mIn, r[keyID], "an OSMOTIC_OUTWARD requester should not see back into an OSMOTIC_INWARD candidate")
	}
}

// TestApplyHebbianLearning_SamePairOnlyOneEdgePerDirection_P3 covers P3:
// linking the same pair twice yields exactly one edge per direction, not a
// duplicate.
func TestApplyHebbianLearning_SamePairOnlyOneEdgePerDirection_P3(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, b := createTwoMemories(t, ctx, svc)

	require.NoError(t, svc.ApplyHebbianLearning(ctx, []string{a, b}, nil, false))
	require.NoError(t, svc.ApplyHebbianLearning(ctx, []string{a, b}, nil, false))

	edges, err := svc.store.AllEdges(ctx, labelMemory, keyID, labelMemory, keyID, relRelatesTo)
	require.NoError(t, err)
	assert.Len(t, edges, 2, "exactly one a->b and one b->a edge, never duplicated")
}

// TestGetRelatedMemories_ClosedRequester_FailsSafe_P4 covers P4: a closed
// requester receives nothing, regardless of how open its candidates are.
func TestGetRelatedMemories_ClosedRequester_FailsSafe_P4(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	closedID, err := svc.CreateMemory(ctx, "closed content", "s", 0.5, domain.Closed, nil)
	require.NoError(t, err)
	openID, err := svc.CreateMemory(ctx, "open content", "s", 0.5, domain.Open, nil)
	require.NoError(t, err)
	conceptID, err := svc.CreateConcept(ctx, "shared", "")
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, closedID, labelConcept, keyName, conceptID, relHasConcept, nil)
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, openID, labelConcept, keyName, conceptID, relHasConcept, nil)
	require.NoError(t, err)

	related, err := svc.GetRelatedMemories(ctx, closedID, 10, true)
	require.NoError(t, err)
	assert.Empty(t, related, "a CLOSED requester should receive nothing despite an open candidate")
}

func TestGetConnectionStatistics_Empty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	stats, err := svc.GetConnectionStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
}

func TestGetConnectionStatistics_DistributionAndThresholds(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, b := createTwoMemories(t, ctx, svc)
	c, err := svc.CreateMemory(ctx, "gamma", "gamma", 0.5, domain.Open, nil)
	require.NoError(t, err)

	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo, map[string]any{"strength": 0.02})
	require.NoError(t, err)
	_, err = svc.store.UpsertEdge(ctx, labelMemory, keyID, b, labelMemory, keyID, c, relRelatesTo, map[string]any{"strength": 0.9})
	require.NoError(t, err)

	stats, err := svc.GetConnectionStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 0.02, stats.Min)
	assert.Equal(t, 0.9, stats.Max)
	assert.Equal(t, 1, stats.BelowDecayThreshold)
	assert.Equal(t, 1, stats.AtOrBelowPruneThreshold)
}

// TestGetDecisionChain_UnionOfAllDirectPredecessorsAndSuccessors covers a
// decision with more than one LED_TO predecessor: every direct predecessor
// and successor must come back, not just the first edge per direction.
func TestGetDecisionChain_UnionOfAllDirectPredecessorsAndSuccessors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	pred1, err := svc.CreateDecision(ctx, "predecessor one", "", "", "", false)
	require.NoError(t, err)
	pred2, err := svc.CreateDecision(ctx, "predecessor two", "", "", "", false)
	require.NoError(t, err)
	middle, err := svc.CreateDecision(ctx, "middle", "", "", "", false)
	require.NoError(t, err)
	succ1, err := svc.CreateDecision(ctx, "successor one", "", "", "", false)
	require.NoError(t, err)
	succ2, err := svc.CreateDecision(ctx, "successor two", "", "", "", false)
	require.NoError(t, err)

	require.NoError(t, svc.LinkDecisionLedTo(ctx, pred1, middle))
	require.NoError(t, svc.LinkDecisionLedTo(ctx, pred2, middle))
	require.NoError(t, svc.LinkDecisionLedTo(ctx, middle, succ1))
	require.NoError(t, svc.LinkDecisionLedTo(ctx, middle, succ2))

	chain, err := svc.GetDecisionChain(ctx, middle)
	require.NoError(t, err)

	ids := make(map[string]bool, len(chain))
	for _, r := range chain {
		id, _ := r[keyID].(string)
		ids[id] = true
	}
	assert.Len(t, chain, 4)
	assert.True(t, ids[pred1], "first predecessor should be included")
	assert.True(t, ids[pred2], "second predecessor should not be dropped")
	assert.True(t, ids[succ1], "first successor should be included")
	assert.True(t, ids[succ2], "second successor should not be dropped")
}
