package memorygraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"axons/internal/apperr"
	"axons/internal/graphstore/fakestore"
	"axons/internal/plasticity"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(fakestore.New(), plasticity.Default(), zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(nil, plasticity.Default(), zap.NewNop())
	assert.True(t, apperr.IsMissingRequired(err))
}

func TestNew_DefaultsPlasticityAndLogger(t *testing.T) {
	svc, err := New(fakestore.New(), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc.plast)
	assert.NotNil(t, svc.logger)
}

func TestClose_RejectsFurtherCalls(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	require.NoError(t, svc.Close(ctx))

	_, err := svc.CreateMemory(ctx, "content", "summary", 0.5, "", nil)
	assert.True(t, apperr.IsClosedClient(err))
}

func TestResolveCompartment(t *testing.T) {
	svc := newTestService(t)

	// compartmentID == nil uses the active compartment.
	svc.activeCompartment = "work"
	assert.Equal(t, "work", svc.resolveCompartment(nil))

	// a non-nil pointer, including "", is an explicit caller choice.
	explicit := "personal"
	assert.Equal(t, "personal", svc.resolveCompartment(&explicit))

	empty := ""
	assert.Equal(t, "", svc.resolveCompartment(&empty))
}

func TestSetActiveCompartment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.SetActiveCompartment(ctx, stringPtr("work")))
	assert.Equal(t, "work", svc.activeCompartment)

	require.NoError(t, svc.SetActiveCompartment(ctx, nil))
	assert.Equal(t, "", svc.activeCompartment)
}

func stringPtr(s string) *string { return &s }
