package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axons/internal/config"
	"axons/internal/plasticity"
)

func TestProvideLogger(t *testing.T) {
	logger, err := ProvideLogger(config.Default())
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestProvideCollector_RespectsMetricsEnabledFlag(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false
	assert.Nil(t, ProvideCollector(cfg))

	cfg.Metrics.Enabled = true
	assert.NotNil(t, ProvideCollector(cfg))
}

func TestProvideTracerProvider_DisabledReturnsNil(t *testing.T) {
	cfg := config.Default()
	cfg.Tracing.Enabled = false
	tp, err := ProvideTracerProvider(cfg)
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestProvidePlasticityConfig_DefaultsWhenUnset(t *testing.T) {
	cfg := config.Default()
	cfg.Plasticity = ""
	plast, err := ProvidePlasticityConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, plasticity.Default().LearningRate, plast.LearningRate)
}

func TestContainer_Close_NilFieldsAreNoOps(t *testing.T) {
	c := &Container{}
	assert.NoError(t, c.Close(context.Background()))
}
