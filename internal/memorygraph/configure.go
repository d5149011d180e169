package memorygraph

import (
	"axons/internal/apperr"
	"axons/internal/plasticity"
)

// Configure implements §6.1's plasticity configure(preset?|learning_rate?):
// swap in one of C1's named presets, then optionally override its
// learning rate. Replaces the service's live policy pointer (a rate override
// is applied to a copy, never to the previous Config) so every subsequent
// strengthen/weaken/hebbian/decay call observes it immediately.
func (s *Service) Configure(preset string, learningRate *float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	next := s.plast
	if preset != "" {
		switch preset {
		case "default":
			next = plasticity.Default()
		case "aggressive_learning":
			next = plasticity.AggressiveLearning()
		case "conservative_learning":
			next = plasticity.ConservativeLearning()
		case "no_plasticity":
			next = plasticity.NoPlasticity()
		case "high_decay":
			next = plasticity.HighDecay()
		default:
			return apperr.NewOutOfRange("preset", 0, 0, 0)
		}
	}
	if learningRate != nil {
		if *learningRate < 0 {
			return apperr.NewOutOfRange("learning_rate", *learningRate, 0, 1e9)
		}
		cfg := *next
		cfg.LearningRate = *learningRate
		next = &cfg
	}

	s.mu.Lock()
	s.plast = next
	s.mu.Unlock()
	return nil
}

// ReplacePlasticityConfig swaps the service's live policy for a document
// loaded wholesale from disk, for internal/config.Watcher's fsnotify
// callback to call on every edit of the plasticity file.
func (s *Service) ReplacePlasticityConfig(next *plasticity.Config) {
	if next == nil {
		return
	}
	s.mu.Lock()
	s.plast = next
	s.mu.Unlock()
}
