//go:build wireinject

// Package di wires axons' much smaller graph: one store, one set of
// cross-cutting decorators, one service. There is no HTTP handler layer in
// the core — axons-mcp serves tools directly off *memorygraph.Service, and
// axons-admin only needs the Collector's registry and a "RETURN 1"
// connectivity query against the store. This file is the wire injector; container.go carries the
// hand-maintained equivalent of what `wire` would generate, since the
// toolchain is not run in this build.
package di

import (
	"context"

	"github.com/google/wire"

	"axons/internal/config"
)

func InitializeContainer(ctx context.Context, cfg *config.AppConfig) (*Container, error) {
	wire.Build(
		ProvideLogger,
		ProvideCollector,
		ProvideTracerProvider,
		ProvideGraphStore,
		ProvidePlasticityConfig,
		ProvideService,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
