package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"axons/internal/plasticity"
)

// Watcher hot-reloads the plasticity configuration file on change and
// invokes a callback with the new Config. Grounded on the teacher's
// internal/config/watcher.go fsnotify-based ConfigWatcher, narrowed to the
// single file this system needs to watch (the plasticity document, not a
// whole config directory — axons has one process config loaded once at
// startup and one hot-reloadable policy document, per SPEC_FULL.md's
// Configuration section).
type Watcher struct {
	path     string
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	onChange func(*plasticity.Config)
	stopCh   chan struct{}
}

// NewWatcher starts watching path for writes and calls onChange with the
// freshly loaded Config each time it changes. The caller owns calling
// Stop() to release the underlying fsnotify watcher.
func NewWatcher(path string, onChange func(*plasticity.Config), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{path: path, logger: logger, fsw: fsw, onChange: onChange, stopCh: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.fsw.Close()
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadPlasticityConfig(w.path)
			if err != nil {
				w.logger.Error("plasticity config reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.logger.Info("plasticity config reloaded", zap.String("path", w.path))
			w.onChange(cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", zap.Error(err))
		case <-w.stopCh:
			return
		}
	}
}

// Stop releases the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
}
