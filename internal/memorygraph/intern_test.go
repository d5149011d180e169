package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/domain"
)

// TestCreateConcept_InterningYieldsSameID_P2 covers P2: re-creating an
// interned entity by its natural key returns the same identity, not a
// duplicate node.
func TestCreateConcept_InterningYieldsSameID_P2(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id1, err := svc.CreateConcept(ctx, "weather", "things about weather")
	require.NoError(t, err)
	id2, err := svc.CreateConcept(ctx, "weather", "a different description")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	all, err := svc.store.ListNodes(ctx, labelConcept, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateKeyword_Interning(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	id1, err := svc.CreateKeyword(ctx, "rain")
	require.NoError(t, err)
	id2, err := svc.CreateKeyword(ctx, "rain")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestCreateEntity_InterningByNameAndType(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	id1, err := svc.CreateEntity(ctx, "Ada", domain.EntityPerson, "", nil)
	require.NoError(t, err)
	id2, err := svc.CreateEntity(ctx, "Ada", domain.EntityPerson, "updated", []string{"Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// A different type for the same name is a distinct entity.
	id3, err := svc.CreateEntity(ctx, "Ada", domain.EntityOrganization, "", nil)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

// TestCreatePreference_RunningAverageMerge_S6 covers S6: a second
// observation of the same (category, preference) pair merges via a running
// average rather than overwriting or duplicating.
func TestCreatePreference_RunningAverageMerge_S6(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	key1, err := svc.CreatePreference(ctx, "editor", "vim", 0.6)
	require.NoError(t, err)
	key2, err := svc.CreatePreference(ctx, "editor", "vim", 1.0)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	record, found, err := svc.store.FindNode(ctx, labelPreference, keyKey, key1)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 0.8, record["strength"], 1e-9, "(0.6*1 + 1.0) / 2 == 0.8")
	assert.Equal(t, 2, record["observations"])
}
