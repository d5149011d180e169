// Package config provides configuration management for the axons memory
// core: process-level settings (AppConfig) and C1's plasticity policy
// document (PlasticityFile), loaded from YAML/JSON with struct-tag
// validation.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment names the deployment environment (mirrors the teacher's
// internal/config/config.go Environment enum).
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// AppConfig is the complete process configuration for axons-mcp/axons-admin.
type AppConfig struct {
	Environment Environment   `yaml:"environment" validate:"required,oneof=development staging production"`
	Store       StoreConfig   `yaml:"store" validate:"required"`
	MCP         MCPConfig     `yaml:"mcp" validate:"required"`
	Admin       AdminConfig   `yaml:"admin" validate:"required"`
	Logging     LoggingConfig `yaml:"logging"`
	Tracing     TracingConfig `yaml:"tracing"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Breaker     BreakerConfig `yaml:"breaker"`
	Plasticity  string        `yaml:"plasticity_file" validate:"omitempty,filepath"`
}

// StoreConfig addresses the Neo4j-compatible graph database by URI. There is
// no file-path form and no $HOME-based default location; Default() points
// at bolt://localhost:7687.
type StoreConfig struct {
	URI      string `yaml:"uri" validate:"required"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database" validate:"required"`
}

// MCPConfig controls the §6.1 tool-surface transport.
type MCPConfig struct {
	Transport string `yaml:"transport" validate:"required,oneof=stdio"`
}

// AdminConfig controls the ambient HTTP satellite (SPEC_FULL.md §4.2).
type AdminConfig struct {
	Port            int           `yaml:"port" validate:"required,min=1,max=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"required"`
}

// LoggingConfig controls the zap logger construction.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// TracingConfig controls otel span export.
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint" validate:"required_if=Enabled true"`
	ServiceName  string `yaml:"service_name"`
}

// MetricsConfig controls prometheus registration.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// BreakerConfig controls internal/resilience's gobreaker wrapper around the
// graph store.
type BreakerConfig struct {
	Enabled             bool          `yaml:"enabled"`
	MaxRequestsHalfOpen uint32        `yaml:"max_requests_half_open"`
	FailureRatio        float64       `yaml:"failure_ratio" validate:"omitempty,min=0,max=1"`
	OpenTimeout         time.Duration `yaml:"open_timeout"`
}

// Default returns a complete, validator-passing baseline configuration,
// matching the teacher's Default()-returns-a-full-struct convention.
func Default() *AppConfig {
	return &AppConfig{
		Environment: Development,
		Store: StoreConfig{
			URI:      "bolt://localhost:7687",
			Database: "neo4j",
		},
		MCP:     MCPConfig{Transport: "stdio"},
		Admin:   AdminConfig{Port: 8090, ShutdownTimeout: 10 * time.Second},
		Logging: LoggingConfig{Level: "info", JSON: true},
		Tracing: TracingConfig{Enabled: false, ServiceName: "axons"},
		Metrics: MetricsConfig{Enabled: true},
		Breaker: BreakerConfig{
			Enabled: true, MaxRequestsHalfOpen: 1,
			FailureRatio: 0.6, OpenTimeout: 30 * time.Second,
		},
	}
}

var validate = validator.New()

// Validate runs struct-tag validation over AppConfig. The validator is used
// only here; tool arguments are checked by the domain constructors instead.
func (c *AppConfig) Validate() error {
	return validate.Struct(c)
}
