package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/domain"
)

// TestMarkAndResolveContradiction_S8 covers S8: marking a contradiction
// between two memories, then resolving it with a superseding memory leaves
// the SUPERSEDES edge I4 requires.
func TestMarkAndResolveContradiction_S8(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, err := svc.CreateMemory(ctx, "it is raining", "weather", 0.8, domain.Open, nil)
	require.NoError(t, err)
	b, err := svc.CreateMemory(ctx, "it is sunny", "weather", 0.8, domain.Open, nil)
	require.NoError(t, err)

	cID, err := svc.MarkContradiction(ctx, a, b, "conflicting weather reports")
	require.NoError(t, err)

	unresolved, err := svc.GetUnresolvedContradictions(ctx)
	require.NoError(t, err)
	require.Len(t, unresolved, 1)
	assert.Equal(t, cID, unresolved[0]["id"])

	require.NoError(t, svc.ResolveContradiction(ctx, cID, &b, "b was observed directly"))

	record, found, err := svc.store.FindNode(ctx, labelContradiction, keyID, cID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, string(domain.ContradictionResolved), record["status"])

	supersedes, err := svc.store.EdgesFrom(ctx, labelContradiction, keyID, cID, labelMemory, relSupersedes)
	require.NoError(t, err)
	require.Len(t, supersedes, 1, "I4: status=resolved requires a SUPERSEDES edge")
	assert.Equal(t, b, supersedes[0].Peer[keyID])

	unresolvedAfter, err := svc.GetUnresolvedContradictions(ctx)
	require.NoError(t, err)
	assert.Empty(t, unresolvedAfter)
}

// TestResolveContradiction_NoSupersedingMemory_MarksAccepted covers the I4
// alternative: resolving without naming a superseding memory records an
// "accepted" status rather than "resolved", so I4's SUPERSEDES requirement
// never applies to it.
func TestResolveContradiction_NoSupersedingMemory_MarksAccepted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, err := svc.CreateMemory(ctx, "a", "a", 0.5, domain.Open, nil)
	require.NoError(t, err)
	b, err := svc.CreateMemory(ctx, "b", "b", 0.5, domain.Open, nil)
	require.NoError(t, err)
	cID, err := svc.MarkContradiction(ctx, a, b, "both can be true")
	require.NoError(t, err)

	require.NoError(t, svc.ResolveContradiction(ctx, cID, nil, "both accepted as context-dependent"))

	record, found, err := svc.store.FindNode(ctx, labelContradiction, keyID, cID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, string(domain.ContradictionAccepted), record["status"])
}

func TestGetMemoryLinkStrength_AbsentEdge(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, err := svc.CreateMemory(ctx, "a", "a", 0.5, domain.Open, nil)
	require.NoError(t, err)
	b, err := svc.CreateMemory(ctx, "b", "b", 0.5, domain.Open, nil)
	require.NoError(t, err)

	_, found, err := svc.GetMemoryLinkStrength(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, found)
}
