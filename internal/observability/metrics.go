package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds axons' Prometheus metrics, grounded on the teacher's
// internal/infrastructure/observability/metrics.go Collector — same
// registry-owning, explicit-fields-over-dynamic-names shape, repointed at
// memory-graph operations instead of HTTP/DynamoDB ones.
//
// MemoriesCreated, GraphOperations and GraphDuration are updated by
// InstrumentGraphOps, and BreakerState by resilience.NewBreaker.
// EdgesStrengthened, EdgesWeakened, EdgesPruned and HebbianLinksFormed are
// registered but nothing in the module increments them, so they stay at 0.
type Collector struct {
	registry *prometheus.Registry

	MemoriesCreated prometheus.Counter
	EdgesStrengthened prometheus.Counter
	EdgesWeakened     prometheus.Counter
	EdgesPruned       prometheus.Counter
	HebbianLinksFormed prometheus.Counter

	GraphOperations *prometheus.CounterVec
	GraphDuration   *prometheus.HistogramVec

	BreakerState *prometheus.GaugeVec
}

// NewCollector builds and registers a fresh Collector under namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		MemoriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "memories_created_total",
			Help: "Total number of memory nodes created.",
		}),
		EdgesStrengthened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "edges_strengthened_total",
			Help: "Total number of strengthen_memory_link/apply_hebbian_learning increases.",
		}),
		EdgesWeakened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "edges_weakened_total",
			Help: "Total number of weaken_memory_link/decay_weak_connections decreases.",
		}),
		EdgesPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "edges_pruned_total",
			Help: "Total number of RELATES_TO edges removed by prune_dead_connections.",
		}),
		HebbianLinksFormed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "hebbian_links_formed_total",
			Help: "Total number of new connections created by apply_hebbian_learning.",
		}),
		GraphOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "graph_operations_total",
			Help: "Total graph store operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		GraphDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "graph_operation_duration_seconds",
			Help:    "Graph store operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
	}

	registry.MustRegister(
		c.MemoriesCreated, c.EdgesStrengthened, c.EdgesWeakened, c.EdgesPruned,
		c.HebbianLinksFormed, c.GraphOperations, c.GraphDuration, c.BreakerState,
	)
	return c
}

// Registry returns the Prometheus registry backing this collector, for
// wiring into cmd/axons-admin's /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
