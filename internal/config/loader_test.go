package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/plasticity"
)

func TestDefault_PassesValidation(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_RejectsUnknownEnvironment(t *testing.T) {
	cfg := Default()
	cfg.Environment = "sandbox"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresOTLPEndpointWhenTracingEnabled(t *testing.T) {
	cfg := Default()
	cfg.Tracing.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Tracing.OTLPEndpoint = "localhost:4317"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ReadsYAMLAndAppliesOverridesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
store:
  uri: bolt://neo4j.internal:7687
  database: axons
mcp:
  transport: stdio
admin:
  port: 9090
  shutdown_timeout: 5s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "bolt://neo4j.internal:7687", cfg.Store.URI)
	assert.Equal(t, 9090, cfg.Admin.Port)
	// Sections omitted from the file keep Default()'s values.
	assert.Equal(t, true, cfg.Breaker.Enabled)
}

func TestLoad_InvalidConfigFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`environment: nonsense`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestPlasticityConfig_SaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasticity.json")

	original := plasticity.AggressiveLearning()
	require.NoError(t, SavePlasticityConfig(path, original))

	loaded, err := LoadPlasticityConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original.LearningRate, loaded.LearningRate)
	assert.Equal(t, original.Curve, loaded.Curve)
	assert.Equal(t, original.DecayAll, loaded.DecayAll)
}
