package plasticity

// ToMap renders Config as a plain key/value map with enum values stored as
// strings, per §4.3.6. The Similarity callback is never serialized.
func (c *Config) ToMap() map[string]any {
	return map[string]any{
		"learning_rate": c.LearningRate,

		"strengthen_amount": c.StrengthenAmount,
		"weaken_amount":     c.WeakenAmount,
		"hebbian_amount":    c.HebbianAmount,
		"retrieval_amount":  c.RetrievalAmount,
		"decay_amount":      c.DecayAmount,

		"initial_strength_explicit": c.InitialStrengthExplicit,
		"initial_strength_implicit": c.InitialStrengthImplicit,

		"max_strength": c.MaxStrength,
		"min_strength": c.MinStrength,

		"curve":           string(c.Curve),
		"curve_steepness": c.CurveSteepness,

		"decay_curve":     string(c.DecayCurve),
		"decay_half_life": c.DecayHalfLife,
		"decay_threshold": c.DecayThreshold,
		"decay_all":       c.DecayAll,

		"prune_threshold": c.PruneThreshold,
		"auto_prune":      c.AutoPrune,

		"retrieval_strengthens":          c.RetrievalStrengthens,
		"retrieval_weakens_competitors":  c.RetrievalWeakensCompetitors,
		"competitor_distance":            c.CompetitorDistance,

		"hebbian_creates_connections": c.HebbianCreatesConnections,

		"similarity_enabled": c.SimilarityEnabled,
	}
}

// FromMap rebuilds a Config from a map produced by ToMap (or an equivalent
// flat JSON document). Unknown keys are ignored; missing keys keep the zero
// value. The Similarity callback is never populated from a map — callers
// must set it explicitly after deserializing, per §4.3.6.
func FromMap(m map[string]any) *Config {
	c := &Config{}

	c.LearningRate = f64(m, "learning_rate")
	c.StrengthenAmount = f64(m, "strengthen_amount")
	c.WeakenAmount = f64(m, "weaken_amount")
	c.HebbianAmount = f64(m, "hebbian_amount")
	c.RetrievalAmount = f64(m, "retrieval_amount")
	c.DecayAmount = f64(m, "decay_amount")

	c.InitialStrengthExplicit = f64(m, "initial_strength_explicit")
	c.InitialStrengthImplicit = f64(m, "initial_strength_implicit")

	c.MaxStrength = f64(m, "max_strength")
	c.MinStrength = f64(m, "min_strength")

	c.Curve = Curve(str(m, "curve"))
	c.CurveSteepness = f64(m, "curve_steepness")

	c.DecayCurve = Curve(str(m, "decay_curve"))
	c.DecayHalfLife = f64(m, "decay_half_life")
	c.DecayThreshold = f64(m, "decay_threshold")
	c.DecayAll = boolean(m, "decay_all")

	c.PruneThreshold = f64(m, "prune_threshold")
	c.AutoPrune = boolean(m, "auto_prune")

	c.RetrievalStrengthens = boolean(m, "retrieval_strengthens")
	c.RetrievalWeakensCompetitors = boolean(m, "retrieval_weakens_competitors")
	c.CompetitorDistance = f64(m, "competitor_distance")

	c.HebbianCreatesConnections = boolean(m, "hebbian_creates_connections")
	c.SimilarityEnabled = boolean(m, "similarity_enabled")

	return c
}

func f64(m map[string]any, key string) float64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func boolean(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
