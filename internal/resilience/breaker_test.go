package resilience

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"axons/internal/config"
	"axons/internal/graphstore"
	"axons/internal/graphstore/fakestore"
)

// failingOps wraps a GraphOps and fails CreateNode on demand, for exercising
// the breaker's ReadyToTrip threshold without a live database.
type failingOps struct {
	graphstore.GraphOps
	failCreateNode bool
}

func (f *failingOps) CreateNode(ctx context.Context, label string, props graphstore.Params) error {
	if f.failCreateNode {
		return errors.New("store unavailable")
	}
	return f.GraphOps.CreateNode(ctx, label, props)
}

func TestNewBreaker_DisabledReturnsUnwrapped(t *testing.T) {
	inner := fakestore.New()
	ops := NewBreaker(inner, config.BreakerConfig{Enabled: false}, zap.NewNop(), nil)
	assert.Same(t, graphstore.GraphOps(inner), ops)
}

func TestNewBreaker_PassesThroughOnSuccess(t *testing.T) {
	ops := NewBreaker(fakestore.New(), config.BreakerConfig{Enabled: true, FailureRatio: 0.5}, zap.NewNop(), nil)
	err := ops.CreateNode(context.Background(), "Memory", graphstore.Params{"id": "m1"})
	require.NoError(t, err)
	record, found, err := ops.FindNode(context.Background(), "Memory", "id", "m1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "m1", record["id"])
}

// TestNewBreaker_TripsOpenAfterSustainedFailures exercises ReadyToTrip: once
// 3+ requests have run and failures meet the configured ratio, the breaker
// opens and the next call fails fast without reaching the inner store.
func TestNewBreaker_TripsOpenAfterSustainedFailures(t *testing.T) {
	inner := &failingOps{GraphOps: fakestore.New(), failCreateNode: true}
	ops := NewBreaker(inner, config.BreakerConfig{Enabled: true, FailureRatio: 0.5}, zap.NewNop(), nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := ops.CreateNode(ctx, "Memory", nil)
		assert.Error(t, err)
	}

	err := ops.CreateNode(ctx, "Memory", nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
