package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/apperr"
	"axons/internal/domain"
	"axons/internal/graphstore"
)

func TestDeleteAll_WipesEveryNodeTableAndClearsActiveCompartment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	compartmentID, err := svc.CreateCompartment(ctx, "work", domain.Open, false, "")
	require.NoError(t, err)
	require.NoError(t, svc.SetActiveCompartment(ctx, &compartmentID))

	memoryID, err := svc.CreateMemory(ctx, "alpha", "a", 0.5, domain.Open, nil)
	require.NoError(t, err)
	conceptID, err := svc.CreateConcept(ctx, "shared", "")
	require.NoError(t, err)
	require.NoError(t, svc.LinkConcept(ctx, memoryID, conceptID, 0.5))

	require.NoError(t, svc.DeleteAll(ctx))

	for _, label := range graphstore.NodeLabels {
		rows, err := svc.store.ListNodes(ctx, label, nil)
		require.NoError(t, err)
		assert.Empty(t, rows, "label %s should have no surviving nodes", label)
	}

	_, err = svc.GetMemory(ctx, memoryID, false)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "", svc.resolveCompartment(nil), "active compartment should be cleared")
}
