package plasticity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveAmount_Linear(t *testing.T) {
	c := Default()
	c.Curve = Linear
	assert.Equal(t, c.StrengthenAmount*c.LearningRate, c.EffectiveAmount(ContextStrengthen, 0.5))
}

func TestEffectiveAmount_Exponential_Strengthen(t *testing.T) {
	c := Default()
	c.Curve = Exponential
	c.CurveSteepness = 0.5

	nearEmpty := c.EffectiveAmount(ContextStrengthen, 0.0)
	nearFull := c.EffectiveAmount(ContextStrengthen, 0.99)
	assert.Greater(t, nearEmpty, nearFull, "strengthening a weak edge should move it more than strengthening an already-strong one")
}

func TestEffectiveAmount_Exponential_Weaken(t *testing.T) {
	c := Default()
	c.Curve = Exponential
	c.CurveSteepness = 0.5

	nearEmpty := c.EffectiveAmount(ContextWeaken, 0.01)
	nearFull := c.EffectiveAmount(ContextWeaken, 0.99)
	assert.Less(t, nearEmpty, nearFull, "weakening a strong edge should move it more than weakening an already-weak one")
}

func TestEffectiveAmount_Logarithmic(t *testing.T) {
	c := Default()
	c.Curve = Logarithmic
	c.CurveSteepness = 0.3

	lo := c.EffectiveAmount(ContextStrengthen, 0.0)
	hi := c.EffectiveAmount(ContextStrengthen, 1.0)
	assert.Less(t, lo, hi)
}

func TestExplicitAmount_BypassesCurve(t *testing.T) {
	c := Default()
	c.Curve = Exponential
	c.LearningRate = 2.0
	assert.Equal(t, 0.6, c.ExplicitAmount(0.3))
}

func TestEffectiveDecay_BelowThresholdOnly(t *testing.T) {
	c := Default()
	c.DecayThreshold = 0.3
	c.DecayAll = false

	assert.Equal(t, 0.0, c.EffectiveDecay(0.5, 10), "above threshold and DecayAll=false should not decay")
	assert.Greater(t, c.EffectiveDecay(0.2, 10), 0.0, "below threshold should decay")
}

func TestEffectiveDecay_DecayAllIgnoresThreshold(t *testing.T) {
	c := HighDecay()
	assert.Greater(t, c.EffectiveDecay(0.9, 5), 0.0)
}

func TestEffectiveDecay_LinearClampsToOne(t *testing.T) {
	c := Default()
	c.DecayAll = true
	c.DecayCurve = Linear
	c.DecayAmount = 1.0
	assert.Equal(t, 1.0, c.EffectiveDecay(0.9, 100))
}

func TestGetInitialStrength_ExplicitVsImplicit(t *testing.T) {
	c := Default()
	assert.Equal(t, c.InitialStrengthExplicit, c.GetInitialStrength(true, "", ""))
	assert.Equal(t, c.InitialStrengthImplicit, c.GetInitialStrength(false, "", ""))
}

func TestGetInitialStrength_SimilarityBoost(t *testing.T) {
	c := Default()
	c.SimilarityEnabled = true
	c.Similarity = func(a, b string) (float64, error) { return 1.0, nil }

	got := c.GetInitialStrength(false, "alpha", "beta")
	assert.Equal(t, c.MaxStrength, got, "similarity=1.0 should boost all the way to MaxStrength")
}

func TestGetInitialStrength_SimilarityErrorFallsBackToBase(t *testing.T) {
	c := Default()
	c.SimilarityEnabled = true
	c.Similarity = func(a, b string) (float64, error) { return 0, assertErr }

	got := c.GetInitialStrength(false, "alpha", "beta")
	assert.Equal(t, c.InitialStrengthImplicit, got)
}

var assertErr = errTest("similarity unavailable")

type errTest string

func (e errTest) Error() string { return string(e) }

func TestClampSteepness(t *testing.T) {
	assert.Equal(t, 0.1, clampSteepness(0.0))
	assert.Equal(t, 0.9, clampSteepness(1.0))
	assert.Equal(t, 0.5, clampSteepness(0.5))
}
