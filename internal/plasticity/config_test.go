package plasticity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoPlasticity_DisablesLearning(t *testing.T) {
	c := NoPlasticity()
	assert.Equal(t, 0.0, c.LearningRate)
	assert.False(t, c.RetrievalStrengthens)
	assert.False(t, c.AutoPrune)
	assert.False(t, c.HebbianCreatesConnections)

	// P6: no_plasticity means strengthen/weaken/hebbian/retrieval amounts are
	// all scaled to zero regardless of curve.
	assert.Equal(t, 0.0, c.EffectiveAmount(ContextStrengthen, 0.5))
}

func TestHighDecay_DecaysEverythingRegardlessOfThreshold(t *testing.T) {
	c := HighDecay()
	assert.True(t, c.DecayAll)
	assert.True(t, c.AutoPrune)
	assert.Greater(t, c.EffectiveDecay(1.0, 1), 0.0)
}

func TestPresetsRoundTripThroughSerialization(t *testing.T) {
	for name, preset := range map[string]*Config{
		"default":               Default(),
		"aggressive_learning":   AggressiveLearning(),
		"conservative_learning": ConservativeLearning(),
		"no_plasticity":         NoPlasticity(),
		"high_decay":            HighDecay(),
	} {
		t.Run(name, func(t *testing.T) {
			restored := FromMap(preset.ToMap())
			assert.Equal(t, preset.LearningRate, restored.LearningRate)
			assert.Equal(t, preset.Curve, restored.Curve)
			assert.Equal(t, preset.DecayAll, restored.DecayAll)
			assert.Equal(t, preset.AutoPrune, restored.AutoPrune)
		})
	}
}
