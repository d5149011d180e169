// Command axons-admin serves the ambient HTTP satellite alongside
// axons-mcp: liveness/readiness probes and a Prometheus /metrics endpoint.
// It never touches the tool surface — that is axons-mcp's job over stdio.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"axons/internal/config"
	"axons/internal/di"
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
			log.Fatalf("axons-admin: load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("axons-admin: invalid config: %v", err)
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("axons-admin: %v", err)
	}
	defer container.Close(context.Background())

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		probeCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if _, err := container.Store.RunQuery(probeCtx, "RETURN 1", nil); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	if container.Collector != nil {
		r.Handle("/metrics", promhttp.HandlerFor(container.Collector.Registry(), promhttp.HandlerOpts{}))
	}

	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.Admin.Port), Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Admin.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Warn("admin server shutdown error", zap.Error(err))
		}
	}()

	container.Logger.Info("starting axons-admin", zap.Int("port", cfg.Admin.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		container.Logger.Fatal("admin server exited", zap.Error(err))
	}
}
