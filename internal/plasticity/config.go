// Package plasticity implements C1, the plasticity policy: a pure function
// of (context, current strength, config) to an effective amount, plus the
// decay and curve math (spec §4.3). It performs no I/O — the hosting
// service composes it with the graph store.
package plasticity

// Curve selects the response shape of EffectiveAmount/EffectiveDecay.
type Curve string

const (
	Linear      Curve = "LINEAR"
	Exponential Curve = "EXPONENTIAL"
	Logarithmic Curve = "LOGARITHMIC"
)

// Context names the orchestration operation requesting an effective amount.
type Context string

const (
	ContextStrengthen Context = "strengthen"
	ContextWeaken     Context = "weaken"
	ContextHebbian    Context = "hebbian"
	ContextRetrieval  Context = "retrieval"
	ContextDecay      Context = "decay"
)

// isIncreaseContext reports whether ctx pushes strength up (true) or down (false).
func isIncreaseContext(ctx Context) bool {
	switch ctx {
	case ContextStrengthen, ContextHebbian, ContextRetrieval:
		return true
	case ContextWeaken, ContextDecay:
		return false
	}
	return true
}

// SimilarityFunc optionally boosts an initial edge strength from the
// semantic similarity of two memory contents. It is never required (spec §1
// Non-goals: vector search is out of scope) and is not part of the
// serialized Config (§4.3.6).
type SimilarityFunc func(contentA, contentB string) (float64, error)

// Config is C1's immutable state (spec §4.3.1). All fields are plain values;
// nothing here touches the graph store.
type Config struct {
	LearningRate float64

	StrengthenAmount float64
	WeakenAmount      float64
	HebbianAmount     float64
	RetrievalAmount   float64
	DecayAmount       float64

	InitialStrengthExplicit float64
	InitialStrengthImplicit float64

	MaxStrength float64
	MinStrength float64

	Curve           Curve
	CurveSteepness  float64

	DecayCurve       Curve
	DecayHalfLife    float64
	DecayThreshold   float64
	DecayAll         bool

	PruneThreshold float64
	AutoPrune      bool

	RetrievalStrengthens         bool
	RetrievalWeakensCompetitors  bool
	CompetitorDistance           float64

	HebbianCreatesConnections bool

	SimilarityEnabled bool
	Similarity        SimilarityFunc `json:"-"`
}

// clampSteepness restricts CurveSteepness to its declared [0.1, 0.9] range.
func clampSteepness(s float64) float64 {
	if s < 0.1 {
		return 0.1
	}
	if s > 0.9 {
		return 0.9
	}
	return s
}

// Default returns the baseline plasticity configuration.
func Default() *Config {
	return &Config{
		LearningRate: 1.0,

		StrengthenAmount: 0.1,
		WeakenAmount:     0.1,
		HebbianAmount:    0.05,
		RetrievalAmount:  0.02,
		DecayAmount:      0.05,

		InitialStrengthExplicit: 0.5,
		InitialStrengthImplicit: 0.3,

		MaxStrength: 1.0,
		MinStrength: 0.0,

		Curve:          Linear,
		CurveSteepness: 0.5,

		DecayCurve:     Linear,
		DecayHalfLife:  7,
		DecayThreshold: 0.3,
		DecayAll:       false,

		PruneThreshold: 0.05,
		AutoPrune:      false,

		RetrievalStrengthens:        true,
		RetrievalWeakensCompetitors: false,
		CompetitorDistance:          0.5,

		HebbianCreatesConnections: true,

		SimilarityEnabled: false,
	}
}

// AggressiveLearning learns and decays faster than Default.
func AggressiveLearning() *Config {
	c := Default()
	c.LearningRate = 2.0
	c.StrengthenAmount = 0.2
	c.WeakenAmount = 0.2
	c.HebbianAmount = 0.1
	c.Curve = Exponential
	c.CurveSteepness = 0.7
	c.HebbianCreatesConnections = true
	return c
}

// ConservativeLearning learns and decays more slowly than Default.
func ConservativeLearning() *Config {
	c := Default()
	c.LearningRate = 0.5
	c.StrengthenAmount = 0.05
	c.WeakenAmount = 0.05
	c.HebbianAmount = 0.02
	c.Curve = Logarithmic
	c.CurveSteepness = 0.3
	return c
}

// NoPlasticity disables all learning: learning_rate=0, retrieval effects and
// auto-prune are also disabled so a read-only deployment never mutates
// strengths as a query side-effect.
func NoPlasticity() *Config {
	c := Default()
	c.LearningRate = 0
	c.RetrievalStrengthens = false
	c.AutoPrune = false
	c.HebbianCreatesConnections = false
	return c
}

// HighDecay decays aggressively and prunes everything below threshold,
// regardless of individual edge strength (DecayAll=true) with a shortened
// half-life.
func HighDecay() *Config {
	c := Default()
	c.DecayAll = true
	c.DecayHalfLife = 2
	c.DecayAmount = 0.2
	c.AutoPrune = true
	return c
}
