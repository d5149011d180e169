package plasticity

import "math"

// EffectiveAmount implements §4.3.2: the implicit-amount path, used whenever
// a plasticity operation was NOT given an explicit amount. It always
// consults the configured Curve.
func (c *Config) EffectiveAmount(ctx Context, currentStrength float64) float64 {
	base := c.contextAmount(ctx) * c.LearningRate

	switch c.Curve {
	case Exponential:
		steepness := clampSteepness(c.CurveSteepness)
		k := 1 / steepness
		var factor float64
		if isIncreaseContext(ctx) {
			factor = 1 - math.Pow(currentStrength, k)
		} else {
			factor = math.Pow(currentStrength, k)
		}
		if factor < 0.1 {
			factor = 0.1
		}
		return base * factor
	case Logarithmic:
		s := clampSteepness(c.CurveSteepness)
		var factor float64
		if isIncreaseContext(ctx) {
			factor = (1 - s) + currentStrength*s
		} else {
			factor = s + (1-currentStrength)*(1-s)
		}
		return base * factor
	default: // Linear
		return base
	}
}

// ExplicitAmount implements the amount-supplied path used by
// strengthen_memory_link/weaken_memory_link when the caller passes an
// explicit amount: effective = amount * learning_rate, bypassing the curve
// entirely. Preserved as observed in the source system; see spec §9 item 1.
func (c *Config) ExplicitAmount(amount float64) float64 {
	return amount * c.LearningRate
}

// contextAmount selects the configured per-context base amount.
func (c *Config) contextAmount(ctx Context) float64 {
	switch ctx {
	case ContextStrengthen:
		return c.StrengthenAmount
	case ContextWeaken:
		return c.WeakenAmount
	case ContextHebbian:
		return c.HebbianAmount
	case ContextRetrieval:
		return c.RetrievalAmount
	case ContextDecay:
		return c.DecayAmount
	}
	return 0
}

// EffectiveDecay implements §4.3.3.
func (c *Config) EffectiveDecay(currentStrength float64, cycles float64) float64 {
	if currentStrength > c.DecayThreshold && !c.DecayAll {
		return 0
	}
	base := c.DecayAmount * c.LearningRate

	switch c.DecayCurve {
	case Exponential:
		halfLifeCycles := math.Floor(c.DecayHalfLife * 100)
		if halfLifeCycles < 1 {
			halfLifeCycles = 1
		}
		return currentStrength * (1 - math.Pow(0.5, cycles/halfLifeCycles))
	case Logarithmic:
		v := base * math.Log(1+cycles)
		if v > 1 {
			return 1
		}
		return v
	default: // Linear
		v := base * cycles
		if v > 1 {
			return 1
		}
		return v
	}
}

// GetInitialStrength implements §4.3.4: the starting strength of a new edge,
// optionally boosted (never reduced) by semantic similarity between two
// memory contents.
func (c *Config) GetInitialStrength(explicit bool, contentA, contentB string) float64 {
	base := c.InitialStrengthImplicit
	if explicit {
		base = c.InitialStrengthExplicit
	}

	result := base
	if c.SimilarityEnabled && c.Similarity != nil && contentA != "" && contentB != "" {
		sim, err := c.Similarity(contentA, contentB)
		if err == nil {
			if sim < 0 {
				sim = 0
			}
			if sim > 1 {
				sim = 1
			}
			result = base + (c.MaxStrength-base)*sim
		}
		// On error, fall back to base silently per §4.3.4.
	}

	return clamp(result, c.MinStrength, c.MaxStrength)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
