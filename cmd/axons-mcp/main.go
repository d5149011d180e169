// Command axons-mcp serves the §6.1 tool surface over stdio for an agent
// host (Claude Desktop, an IDE, or any other MCP client) to attach to.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"axons/internal/config"
	"axons/internal/di"
	"axons/internal/mcptools"
	"axons/internal/plasticity"
)

func main() {
	configPath := flag.String("config", "", "path to the axons config file (YAML); defaults built in if empty")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("axons-mcp: load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("axons-mcp: invalid config: %v", err)
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("axons-mcp: %v", err)
	}
	defer container.Close(context.Background())

	container.Logger.Info("starting axons-mcp", zap.String("transport", cfg.MCP.Transport))

	server := mcp.NewServer(&mcp.Implementation{Name: "axons", Version: "0.1.0"}, nil)
	mcptools.Register(server, container.Service)

	if cfg.Plasticity != "" {
		watcher, err := config.NewWatcher(cfg.Plasticity, func(next *plasticity.Config) {
			container.Service.ReplacePlasticityConfig(next)
		}, container.Logger)
		if err != nil {
			container.Logger.Warn("plasticity hot-reload disabled", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		container.Logger.Fatal("mcp server exited", zap.Error(err))
	}
}
