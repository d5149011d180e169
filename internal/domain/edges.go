package domain

import (
	"time"

	"axons/internal/apperr"
)

// SynapticEdge is the RELATES_TO relation between two Memory nodes — the
// edge plasticity (C1) strengthens, decays, and prunes (spec §3.2, §4.1).
type SynapticEdge struct {
	Strength     float64
	RelType      RelType
	Permeability Permeability
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks Strength ∈ [0,1] and that RelType/Permeability, if set,
// are declared values.
func (e SynapticEdge) Validate() error {
	if !InRange(e.Strength, 0, 1) {
		return apperr.NewOutOfRange("strength", e.Strength, 0, 1)
	}
	switch e.RelType {
	case "", RelHebbian, RelExplicit, RelRelated, RelCauses, RelSupports, RelContrasts:
	default:
		return apperr.NewMissingRequired("relType")
	}
	if e.Permeability != "" && !e.Permeability.Valid() {
		return apperr.NewOutOfRange("permeability", 0, 0, 0)
	}
	return nil
}

// ConceptEdge is the HAS_CONCEPT relation between a Memory and a Concept.
type ConceptEdge struct {
	Relevance float64
}

func NewConceptEdge(relevance float64) (ConceptEdge, error) {
	if !InRange(relevance, 0, 1) {
		return ConceptEdge{}, apperr.NewOutOfRange("relevance", relevance, 0, 1)
	}
	return ConceptEdge{Relevance: relevance}, nil
}

// QuestionEdge is the PARTIALLY_ANSWERS relation between a Memory and a
// Question.
type QuestionEdge struct {
	Completeness float64
}

func NewQuestionEdge(completeness float64) (QuestionEdge, error) {
	if !InRange(completeness, 0, 1) {
		return QuestionEdge{}, apperr.NewOutOfRange("completeness", completeness, 0, 1)
	}
	return QuestionEdge{Completeness: completeness}, nil
}

// GoalEdge is the SUPPORTS relation between a Memory and a Goal.
type GoalEdge struct {
	Strength float64
}

func NewGoalEdge(strength float64) (GoalEdge, error) {
	if !InRange(strength, 0, 1) {
		return GoalEdge{}, apperr.NewOutOfRange("strength", strength, 0, 1)
	}
	return GoalEdge{Strength: strength}, nil
}
