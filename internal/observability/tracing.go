package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"

	"axons/internal/config"
	"axons/internal/graphstore"
)

// TracerProvider wraps an OpenTelemetry tracer provider, grounded on the
// teacher's internal/infrastructure/observability/tracing.go InitTracing —
// trimmed of its Lambda/X-Ray branches, since axons runs as a long-lived MCP
// process, not a FaaS handler.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// Tracer returns the tracer to pass to TraceGraphOps.
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// InitTracing builds and installs the global tracer provider.
func InitTracing(cfg config.TracingConfig, env config.Environment) (*TracerProvider, error) {
	name := cfg.ServiceName
	if name == "" {
		name = "axons"
	}

	endpoint := cfg.OTLPEndpoint
	if endpoint == "" {
		endpoint = "localhost:4317"
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	exporter, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(name),
			attribute.String("deployment.environment", string(env)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if env == config.Production {
		sampler = sdktrace.TraceIDRatioBased(0.1)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return &TracerProvider{provider: tp, tracer: tp.Tracer(name)}, nil
}

// Shutdown flushes and stops the tracer provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	return tp.provider.Shutdown(ctx)
}

// TraceGraphOps wraps ops so every call opens a span named after the
// operation, recording the error (if any) and key identifying attributes.
// Grounded on the teacher's tracedNodeRepository, generalized from its
// fixed node-repository method set to GraphOps' wider surface via one
// helper instead of one hand-rolled wrapper per method.
func TraceGraphOps(ops graphstore.GraphOps, tracer trace.Tracer) graphstore.GraphOps {
	return &tracedGraphOps{inner: ops, tracer: tracer}
}

type tracedGraphOps struct {
	inner  graphstore.GraphOps
	tracer trace.Tracer
}

func (t *tracedGraphOps) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "graphstore."+name, trace.WithAttributes(attrs...))
}

func (t *tracedGraphOps) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	ctx, span := t.span(ctx, "RunQuery")
	defer span.End()
	rows, err := t.inner.RunQuery(ctx, cypher, params)
	recordErr(span, err)
	return rows, err
}

func (t *tracedGraphOps) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	ctx, span := t.span(ctx, "RunWrite")
	defer span.End()
	rows, err := t.inner.RunWrite(ctx, cypher, params)
	recordErr(span, err)
	return rows, err
}

func (t *tracedGraphOps) RunSchemaWrite(ctx context.Context, cypher string) error {
	ctx, span := t.span(ctx, "RunSchemaWrite")
	defer span.End()
	err := t.inner.RunSchemaWrite(ctx, cypher)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) EnsureSchema(ctx context.Context) error {
	ctx, span := t.span(ctx, "EnsureSchema")
	defer span.End()
	err := t.inner.EnsureSchema(ctx)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) Begin(ctx context.Context) (graphstore.Tx, error) {
	ctx, span := t.span(ctx, "Begin")
	defer span.End()
	tx, err := t.inner.Begin(ctx)
	recordErr(span, err)
	return tx, err
}

func (t *tracedGraphOps) CreateNode(ctx context.Context, label string, props graphstore.Params) error {
	ctx, span := t.span(ctx, "CreateNode", attribute.String("label", label))
	defer span.End()
	err := t.inner.CreateNode(ctx, label, props)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) FindNode(ctx context.Context, label, keyField string, keyValue any) (graphstore.Record, bool, error) {
	ctx, span := t.span(ctx, "FindNode", attribute.String("label", label))
	defer span.End()
	rec, ok, err := t.inner.FindNode(ctx, label, keyField, keyValue)
	recordErr(span, err)
	return rec, ok, err
}

func (t *tracedGraphOps) UpdateNode(ctx context.Context, label, keyField string, keyValue any, props graphstore.Params) error {
	ctx, span := t.span(ctx, "UpdateNode", attribute.String("label", label))
	defer span.End()
	err := t.inner.UpdateNode(ctx, label, keyField, keyValue, props)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) DeleteNode(ctx context.Context, label, keyField string, keyValue any) error {
	ctx, span := t.span(ctx, "DeleteNode", attribute.String("label", label))
	defer span.End()
	err := t.inner.DeleteNode(ctx, label, keyField, keyValue)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) ListNodes(ctx context.Context, label string, filter graphstore.Params) ([]graphstore.Record, error) {
	ctx, span := t.span(ctx, "ListNodes", attribute.String("label", label))
	defer span.End()
	rows, err := t.inner.ListNodes(ctx, label, filter)
	recordErr(span, err)
	return rows, err
}

func (t *tracedGraphOps) DeleteAllNodes(ctx context.Context, label string) error {
	ctx, span := t.span(ctx, "DeleteAllNodes", attribute.String("label", label))
	defer span.End()
	err := t.inner.DeleteAllNodes(ctx, label)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) SearchMemories(ctx context.Context, term string, limit int) ([]graphstore.Record, error) {
	ctx, span := t.span(ctx, "SearchMemories", attribute.Int("limit", limit))
	defer span.End()
	rows, err := t.inner.SearchMemories(ctx, term, limit)
	recordErr(span, err)
	return rows, err
}

func (t *tracedGraphOps) UpsertEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string, props graphstore.Params) (bool, error) {
	ctx, span := t.span(ctx, "UpsertEdge", attribute.String("relType", relType))
	defer span.End()
	created, err := t.inner.UpsertEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType, props)
	recordErr(span, err)
	return created, err
}

func (t *tracedGraphOps) GetEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) (graphstore.Record, bool, error) {
	ctx, span := t.span(ctx, "GetEdge", attribute.String("relType", relType))
	defer span.End()
	rec, ok, err := t.inner.GetEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
	recordErr(span, err)
	return rec, ok, err
}

func (t *tracedGraphOps) DeleteEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) error {
	ctx, span := t.span(ctx, "DeleteEdge", attribute.String("relType", relType))
	defer span.End()
	err := t.inner.DeleteEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
	recordErr(span, err)
	return err
}

func (t *tracedGraphOps) EdgesFrom(ctx context.Context, fromLabel, fromKeyField string, fromKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	ctx, span := t.span(ctx, "EdgesFrom", attribute.String("relType", relType))
	defer span.End()
	edges, err := t.inner.EdgesFrom(ctx, fromLabel, fromKeyField, fromKey, peerLabel, relType)
	recordErr(span, err)
	return edges, err
}

func (t *tracedGraphOps) EdgesTo(ctx context.Context, toLabel, toKeyField string, toKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	ctx, span := t.span(ctx, "EdgesTo", attribute.String("relType", relType))
	defer span.End()
	edges, err := t.inner.EdgesTo(ctx, toLabel, toKeyField, toKey, peerLabel, relType)
	recordErr(span, err)
	return edges, err
}

func (t *tracedGraphOps) AllEdges(ctx context.Context, fromLabel, fromKeyField, toLabel, toKeyField, relType string) ([]graphstore.EdgePair, error) {
	ctx, span := t.span(ctx, "AllEdges", attribute.String("relType", relType))
	defer span.End()
	edges, err := t.inner.AllEdges(ctx, fromLabel, fromKeyField, toLabel, toKeyField, relType)
	recordErr(span, err)
	return edges, err
}

func recordErr(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}
