package observability

import (
	"context"
	"time"

	"axons/internal/graphstore"
)

// InstrumentGraphOps wraps ops so every call records GraphOperations and
// GraphDuration against c. Composes with TraceGraphOps — wrap whichever
// order is convenient, both decorators pass every call straight through to
// the next layer.
func InstrumentGraphOps(ops graphstore.GraphOps, c *Collector) graphstore.GraphOps {
	return &metricGraphOps{inner: ops, c: c}
}

type metricGraphOps struct {
	inner graphstore.GraphOps
	c     *Collector
}

func (m *metricGraphOps) observe(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.c.GraphOperations.WithLabelValues(operation, outcome).Inc()
	m.c.GraphDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *metricGraphOps) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	start := time.Now()
	rows, err := m.inner.RunQuery(ctx, cypher, params)
	m.observe("RunQuery", start, err)
	return rows, err
}

func (m *metricGraphOps) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	start := time.Now()
	rows, err := m.inner.RunWrite(ctx, cypher, params)
	m.observe("RunWrite", start, err)
	return rows, err
}

func (m *metricGraphOps) RunSchemaWrite(ctx context.Context, cypher string) error {
	start := time.Now()
	err := m.inner.RunSchemaWrite(ctx, cypher)
	m.observe("RunSchemaWrite", start, err)
	return err
}

func (m *metricGraphOps) EnsureSchema(ctx context.Context) error {
	start := time.Now()
	err := m.inner.EnsureSchema(ctx)
	m.observe("EnsureSchema", start, err)
	return err
}

func (m *metricGraphOps) Begin(ctx context.Context) (graphstore.Tx, error) {
	start := time.Now()
	tx, err := m.inner.Begin(ctx)
	m.observe("Begin", start, err)
	return tx, err
}

func (m *metricGraphOps) CreateNode(ctx context.Context, label string, props graphstore.Params) error {
	start := time.Now()
	err := m.inner.CreateNode(ctx, label, props)
	m.observe("CreateNode", start, err)
	if err == nil && label == "Memory" {
		m.c.MemoriesCreated.Inc()
	}
	return err
}

func (m *metricGraphOps) FindNode(ctx context.Context, label, keyField string, keyValue any) (graphstore.Record, bool, error) {
	start := time.Now()
	rec, ok, err := m.inner.FindNode(ctx, label, keyField, keyValue)
	m.observe("FindNode", start, err)
	return rec, ok, err
}

func (m *metricGraphOps) UpdateNode(ctx context.Context, label, keyField string, keyValue any, props graphstore.Params) error {
	start := time.Now()
	err := m.inner.UpdateNode(ctx, label, keyField, keyValue, props)
	m.observe("UpdateNode", start, err)
	return err
}

func (m *metricGraphOps) DeleteNode(ctx context.Context, label, keyField string, keyValue any) error {
	start := time.Now()
	err := m.inner.DeleteNode(ctx, label, keyField, keyValue)
	m.observe("DeleteNode", start, err)
	return err
}

func (m *metricGraphOps) ListNodes(ctx context.Context, label string, filter graphstore.Params) ([]graphstore.Record, error) {
	start := time.Now()
	rows, err := m.inner.ListNodes(ctx, label, filter)
	m.observe("ListNodes", start, err)
	return rows, err
}

func (m *metricGraphOps) DeleteAllNodes(ctx context.Context, label string) error {
	start := time.Now()
	err := m.inner.DeleteAllNodes(ctx, label)
	m.observe("DeleteAllNodes", start, err)
	return err
}

func (m *metricGraphOps) SearchMemories(ctx context.Context, term string, limit int) ([]graphstore.Record, error) {
	start := time.Now()
	rows, err := m.inner.SearchMemories(ctx, term, limit)
	m.observe("SearchMemories", start, err)
	return rows, err
}

func (m *metricGraphOps) UpsertEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string, props graphstore.Params) (bool, error) {
	start := time.Now()
	created, err := m.inner.UpsertEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType, props)
	m.observe("UpsertEdge", start, err)
	return created, err
}

func (m *metricGraphOps) GetEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) (graphstore.Record, bool, error) {
	start := time.Now()
	rec, ok, err := m.inner.GetEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
	m.observe("GetEdge", start, err)
	return rec, ok, err
}

func (m *metricGraphOps) DeleteEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) error {
	start := time.Now()
	err := m.inner.DeleteEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
	m.observe("DeleteEdge", start, err)
	return err
}

func (m *metricGraphOps) EdgesFrom(ctx context.Context, fromLabel, fromKeyField string, fromKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	start := time.Now()
	edges, err := m.inner.EdgesFrom(ctx, fromLabel, fromKeyField, fromKey, peerLabel, relType)
	m.observe("EdgesFrom", start, err)
	return edges, err
}

func (m *metricGraphOps) EdgesTo(ctx context.Context, toLabel, toKeyField string, toKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	start := time.Now()
	edges, err := m.inner.EdgesTo(ctx, toLabel, toKeyField, toKey, peerLabel, relType)
	m.observe("EdgesTo", start, err)
	return edges, err
}

func (m *metricGraphOps) AllEdges(ctx context.Context, fromLabel, fromKeyField, toLabel, toKeyField, relType string) ([]graphstore.EdgePair, error) {
	start := time.Now()
	edges, err := m.inner.AllEdges(ctx, fromLabel, fromKeyField, toLabel, toKeyField, relType)
	m.observe("AllEdges", start, err)
	return edges, err
}
