// Package di wires axons' dependencies: configuration, the cross-cutting
// observability/resilience decorators, the graph store, and the memory
// graph service. Grounded on the teacher's internal/di/container.go
// (NewContainer/initialize-in-order shape), trimmed to axons' single
// service rather than the teacher's repository-per-aggregate layering.
package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"axons/internal/config"
	"axons/internal/graphstore"
	"axons/internal/graphstore/neo4jstore"
	"axons/internal/memorygraph"
	"axons/internal/observability"
	"axons/internal/plasticity"
	"axons/internal/resilience"
)

// Container holds axons' fully wired dependency graph for the lifetime of a
// process (axons-mcp or axons-admin).
type Container struct {
	Config         *config.AppConfig
	Logger         *zap.Logger
	Collector      *observability.Collector
	TracerProvider *observability.TracerProvider
	Store          graphstore.GraphOps
	Plasticity     *plasticity.Config
	Service        *memorygraph.Service
}

// ProvideLogger builds the process logger.
func ProvideLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Environment, cfg.Logging)
}

// ProvideCollector builds the Prometheus registry, or a nil Collector when
// metrics are disabled — resilience.NewBreaker accepts a nil *Collector, and
// ProvideGraphStore skips the instrumentation decorator when it is nil.
func ProvideCollector(cfg *config.AppConfig) *observability.Collector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return observability.NewCollector("axons")
}

// ProvideTracerProvider builds the tracer provider, or nil when tracing is
// disabled.
func ProvideTracerProvider(cfg *config.AppConfig) (*observability.TracerProvider, error) {
	if !cfg.Tracing.Enabled {
		return nil, nil
	}
	return observability.InitTracing(cfg.Tracing, cfg.Environment)
}

// ProvidePlasticityConfig loads C1's policy document, falling back to the
// teacher-style Default() when no document path was configured.
func ProvidePlasticityConfig(cfg *config.AppConfig) (*plasticity.Config, error) {
	if cfg.Plasticity == "" {
		return plasticity.Default(), nil
	}
	return config.LoadPlasticityConfig(cfg.Plasticity)
}

// ProvideGraphStore builds the neo4j-backed GraphOps and layers tracing,
// metrics, and circuit-breaking decorators around it in the order the
// teacher's tracedNodeRepository/instrumented-repository/circuit-breaker
// middleware stack up: tracing outermost (so spans bracket breaker
// rejections too), then metrics, then the breaker closest to the driver.
func ProvideGraphStore(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, collector *observability.Collector, tp *observability.TracerProvider) (graphstore.GraphOps, error) {
	store, err := neo4jstore.New(ctx, cfg.Store.URI, cfg.Store.Username, cfg.Store.Password, cfg.Store.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("di: open graph store: %w", err)
	}

	var ops graphstore.GraphOps = store
	ops = resilience.NewBreaker(ops, cfg.Breaker, logger, collector)
	if collector != nil {
		ops = observability.InstrumentGraphOps(ops, collector)
	}
	if tp != nil {
		ops = observability.TraceGraphOps(ops, tp.Tracer())
	}
	return ops, nil
}

// ProvideService builds the memory graph service (C4) over the decorated
// store, then ensures the schema constraints C3 depends on.
func ProvideService(ctx context.Context, store graphstore.GraphOps, plast *plasticity.Config, logger *zap.Logger) (*memorygraph.Service, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("di: ensure schema: %w", err)
	}
	return memorygraph.New(store, plast, logger)
}

// NewContainer assembles the full dependency graph in the order wire.go's
// //go:build wireinject injector declares it (ProvideLogger,
// ProvideCollector, ProvideTracerProvider, ProvideGraphStore,
// ProvidePlasticityConfig, ProvideService) — hand-maintained here since the
// wire binary is not run in this build.
func NewContainer(ctx context.Context, cfg *config.AppConfig) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("di: logger: %w", err)
	}

	collector := ProvideCollector(cfg)

	tp, err := ProvideTracerProvider(cfg)
	if err != nil {
		logger.Warn("tracing disabled after init failure", zap.Error(err))
		tp = nil
	}

	store, err := ProvideGraphStore(ctx, cfg, logger, collector, tp)
	if err != nil {
		return nil, err
	}

	plast, err := ProvidePlasticityConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("di: plasticity config: %w", err)
	}

	svc, err := ProvideService(ctx, store, plast, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Collector:      collector,
		TracerProvider: tp,
		Store:          store,
		Plasticity:     plast,
		Service:        svc,
	}, nil
}

// Close releases the container's resources in reverse-acquisition order.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.Service != nil {
		if err := c.Service.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.TracerProvider != nil {
		if err := c.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("di: close container: %v", errs)
	}
	return nil
}
