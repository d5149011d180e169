// Package resilience wraps the graph store port in a circuit breaker so a
// struggling Neo4j instance degrades to fast failures instead of piling up
// blocked MCP tool calls. Grounded on the teacher's
// internal/middleware/circuit_breaker.go gobreaker wrapper, moved from an
// HTTP middleware (wrapping a handler) to a GraphOps decorator (wrapping a
// store), since axons' C3 boundary is the Neo4j driver, not an inbound HTTP
// request.
package resilience

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"axons/internal/config"
	"axons/internal/graphstore"
	"axons/internal/observability"
)

// Breaker wraps a graphstore.GraphOps, tripping open after a sustained
// failure ratio and rejecting calls immediately while open.
type Breaker struct {
	inner graphstore.GraphOps
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker builds a Breaker from cfg. If cfg.Enabled is false, ops is
// returned unwrapped — the caller gets the exact same interface either way.
func NewBreaker(ops graphstore.GraphOps, cfg config.BreakerConfig, logger *zap.Logger, metrics *observability.Collector) graphstore.GraphOps {
	if !cfg.Enabled {
		return ops
	}
	name := "graphstore"
	ratio := cfg.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRequests := cfg.MaxRequestsHalfOpen
	if maxRequests == 0 {
		maxRequests = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		OnStateChange: func(cbName string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", cbName), zap.String("from", from.String()), zap.String("to", to.String()))
			if metrics != nil {
				metrics.BreakerState.WithLabelValues(cbName).Set(float64(stateValue(to)))
			}
		},
	})
	return &Breaker{inner: ops, cb: cb}
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// do runs fn through the breaker, preserving fn's typed result. result is an
// untyped nil interface only when the breaker rejected the call outright
// (open/half-open) without running fn; otherwise it carries fn's (possibly
// zero-valued) return.
func do[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if result == nil {
		var zero T
		return zero, err
	}
	return result.(T), err
}

func (b *Breaker) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return do(b.cb, func() ([]graphstore.Record, error) { return b.inner.RunQuery(ctx, cypher, params) })
}

func (b *Breaker) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return do(b.cb, func() ([]graphstore.Record, error) { return b.inner.RunWrite(ctx, cypher, params) })
}

func (b *Breaker) RunSchemaWrite(ctx context.Context, cypher string) error {
	_, err := do(b.cb, func() (struct{}, error) { return struct{}{}, b.inner.RunSchemaWrite(ctx, cypher) })
	return err
}

func (b *Breaker) EnsureSchema(ctx context.Context) error {
	_, err := do(b.cb, func() (struct{}, error) { return struct{}{}, b.inner.EnsureSchema(ctx) })
	return err
}

func (b *Breaker) Begin(ctx context.Context) (graphstore.Tx, error) {
	return do(b.cb, func() (graphstore.Tx, error) { return b.inner.Begin(ctx) })
}

func (b *Breaker) CreateNode(ctx context.Context, label string, props graphstore.Params) error {
	_, err := do(b.cb, func() (struct{}, error) { return struct{}{}, b.inner.CreateNode(ctx, label, props) })
	return err
}

func (b *Breaker) FindNode(ctx context.Context, label, keyField string, keyValue any) (graphstore.Record, bool, error) {
	type result struct {
		rec graphstore.Record
		ok  bool
	}
	r, err := do(b.cb, func() (result, error) {
		rec, ok, err := b.inner.FindNode(ctx, label, keyField, keyValue)
		return result{rec, ok}, err
	})
	return r.rec, r.ok, err
}

func (b *Breaker) UpdateNode(ctx context.Context, label, keyField string, keyValue any, props graphstore.Params) error {
	_, err := do(b.cb, func() (struct{}, error) { return struct{}{}, b.inner.UpdateNode(ctx, label, keyField, keyValue, props) })
	return err
}

func (b *Breaker) DeleteNode(ctx context.Context, label, keyField string, keyValue any) error {
	_, err := do(b.cb, func() (struct{}, error) { return struct{}{}, b.inner.DeleteNode(ctx, label, keyField, keyValue) })
	return err
}

func (b *Breaker) ListNodes(ctx context.Context, label string, filter graphstore.Params) ([]graphstore.Record, error) {
	return do(b.cb, func() ([]graphstore.Record, error) { return b.inner.ListNodes(ctx, label, filter) })
}

func (b *Breaker) DeleteAllNodes(ctx context.Context, label string) error {
	_, err := do(b.cb, func() (struct{}, error) { return struct{}{}, b.inner.DeleteAllNodes(ctx, label) })
	return err
}

func (b *Breaker) SearchMemories(ctx context.Context, term string, limit int) ([]graphstore.Record, error) {
	return do(b.cb, func() ([]graphstore.Record, error) { return b.inner.SearchMemories(ctx, term, limit) })
}

func (b *Breaker) UpsertEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string, props graphstore.Params) (bool, error) {
	return do(b.cb, func() (bool, error) {
		return b.inner.UpsertEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType, props)
	})
}

func (b *Breaker) GetEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) (graphstore.Record, bool, error) {
	type result struct {
		rec graphstore.Record
		ok  bool
	}
	r, err := do(b.cb, func() (result, error) {
		rec, ok, err := b.inner.GetEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
		return result{rec, ok}, err
	})
	return r.rec, r.ok, err
}

func (b *Breaker) DeleteEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) error {
	_, err := do(b.cb, func() (struct{}, error) {
		return struct{}{}, b.inner.DeleteEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
	})
	return err
}

func (b *Breaker) EdgesFrom(ctx context.Context, fromLabel, fromKeyField string, fromKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	return do(b.cb, func() ([]graphstore.Edge, error) {
		return b.inner.EdgesFrom(ctx, fromLabel, fromKeyField, fromKey, peerLabel, relType)
	})
}

func (b *Breaker) EdgesTo(ctx context.Context, toLabel, toKeyField string, toKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	return do(b.cb, func() ([]graphstore.Edge, error) {
		return b.inner.EdgesTo(ctx, toLabel, toKeyField, toKey, peerLabel, relType)
	})
}

func (b *Breaker) AllEdges(ctx context.Context, fromLabel, fromKeyField, toLabel, toKeyField, relType string) ([]graphstore.EdgePair, error) {
	return do(b.cb, func() ([]graphstore.EdgePair, error) {
		return b.inner.AllEdges(ctx, fromLabel, fromKeyField, toLabel, toKeyField, relType)
	})
}
