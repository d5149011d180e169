package observability

import (
	"context"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/graphstore"
	"axons/internal/graphstore/fakestore"
)

func TestInstrumentGraphOps_RecordsSuccessAndError(t *testing.T) {
	collector := NewCollector("axons_test")
	ops := InstrumentGraphOps(fakestore.New(), collector)
	ctx := context.Background()

	require.NoError(t, ops.CreateNode(ctx, "Memory", graphstore.Params{"id": "m1"}))

	m := &dto.Metric{}
	require.NoError(t, collector.GraphOperations.WithLabelValues("CreateNode", "ok").Write(m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	_, _, err := ops.FindNode(ctx, "Memory", "id", "m1")
	require.NoError(t, err)

	m2 := &dto.Metric{}
	require.NoError(t, collector.GraphOperations.WithLabelValues("FindNode", "ok").Write(m2))
	assert.Equal(t, float64(1), m2.GetCounter().GetValue())
}

func TestInstrumentGraphOps_RecordsOperationDuration(t *testing.T) {
	collector := NewCollector("axons_test")
	ops := InstrumentGraphOps(fakestore.New(), collector)
	ctx := context.Background()

	require.NoError(t, ops.CreateNode(ctx, "Memory", graphstore.Params{"id": "m1"}))

	m := &dto.Metric{}
	require.NoError(t, collector.GraphDuration.WithLabelValues("CreateNode").Write(m))
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
}
