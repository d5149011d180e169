package observability

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/codes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/graphstore"
	"axons/internal/graphstore/fakestore"
)

func TestTraceGraphOps_RecordsSpanPerCall(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ops := TraceGraphOps(fakestore.New(), tp.Tracer("test"))
	ctx := context.Background()

	require.NoError(t, ops.CreateNode(ctx, "Memory", graphstore.Params{"id": "m1"}))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "graphstore.CreateNode", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestTraceGraphOps_RecordsErrorOnSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ops := TraceGraphOps(&failingFindOps{fakestore.New()}, tp.Tracer("test"))
	ctx := context.Background()

	_, _, err := ops.FindNode(ctx, "Memory", "id", "m1")
	assert.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1, "RecordError should have attached an exception event")
}

type failingFindOps struct {
	graphstore.GraphOps
}

func (f *failingFindOps) FindNode(ctx context.Context, label, keyField string, keyValue any) (graphstore.Record, bool, error) {
	return nil, false, errors.New("boom")
}
