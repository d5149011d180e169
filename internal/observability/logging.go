// Package observability provides the structured logging, tracing, and
// metrics surface shared by cmd/axons-mcp and cmd/axons-admin, grounded on
// the teacher's internal/infrastructure/observability package.
package observability

import (
	"axons/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds a zap.Logger from LoggingConfig, following the teacher's
// initializeLogger: production preset in production, development preset
// otherwise, with an explicit level override.
func NewLogger(env config.Environment, cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if env == config.Production {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Encoding = "json"
	if !cfg.JSON && env != config.Production {
		zapConfig.Encoding = "console"
	}

	switch cfg.Level {
	case "debug":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return zapConfig.Build()
}
