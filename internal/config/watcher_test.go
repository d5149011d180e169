package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"axons/internal/plasticity"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasticity.json")
	require.NoError(t, SavePlasticityConfig(path, plasticity.Default()))

	changes := make(chan *plasticity.Config, 1)
	w, err := NewWatcher(path, func(c *plasticity.Config) { changes <- c }, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, SavePlasticityConfig(path, plasticity.HighDecay()))

	select {
	case c := <-changes:
		assert.True(t, c.DecayAll, "reloaded config should reflect the HighDecay preset written to disk")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher to observe the write")
	}
}

func TestWatcher_MissingPathFailsToStart(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.json"), func(*plasticity.Config) {}, zap.NewNop())
	assert.Error(t, err)
}

func TestWatcher_IgnoresMalformedReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasticity.json")
	require.NoError(t, SavePlasticityConfig(path, plasticity.Default()))

	changes := make(chan *plasticity.Config, 1)
	w, err := NewWatcher(path, func(c *plasticity.Config) { changes <- c }, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	select {
	case <-changes:
		t.Fatal("malformed config should not have triggered onChange")
	case <-time.After(300 * time.Millisecond):
	}
}
