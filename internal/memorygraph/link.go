package memorygraph

import (
	"context"
	"time"

	"axons/internal/domain"
	"axons/internal/permeability"
)

// LinkMemories creates or refreshes the synaptic RELATES_TO edge a->b (spec
// §4.1 "Link operations"). The edge is written with the caller's
// strength/relType/permeability exactly as given; no default from C1's
// initial strengths is filled in. Returns false without writing when
// checkCompartments is true and C2 denies formation.
func (s *Service) LinkMemories(ctx context.Context, a, b string, strength float64, relType domain.RelType, perm domain.Permeability, checkCompartments bool) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if checkCompartments {
		flowA, err := s.loadMemoryFlow(ctx, a)
		if err != nil {
			return false, err
		}
		flowB, err := s.loadMemoryFlow(ctx, b)
		if err != nil {
			return false, err
		}
		if !permeability.CanFormConnection(flowA, flowB) {
			return false, nil
		}
	}

	edge := domain.SynapticEdge{Strength: strength, RelType: relType, Permeability: perm, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := edge.Validate(); err != nil {
		return false, err
	}
	_, err := s.store.UpsertEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo, map[string]any{
		"strength": edge.Strength, "relType": string(edge.RelType),
		"permeability": string(edge.Permeability), "createdAt": edge.CreatedAt, "updatedAt": edge.UpdatedAt,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// linkSimple is the shared body for idempotent Memory->X edges that carry no
// numeric property to validate.
func (s *Service) linkSimple(ctx context.Context, memoryID, toLabel, toKeyField, toKey, relType string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, toLabel, toKeyField, toKey, relType, nil)
	return err
}

// LinkConcept attaches memoryID to conceptName via HAS_CONCEPT, validating
// relevance ∈ [0,1].
func (s *Service) LinkConcept(ctx context.Context, memoryID, conceptName string, relevance float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	edge, err := domain.NewConceptEdge(relevance)
	if err != nil {
		return err
	}
	_, err = s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelConcept, keyName, conceptName, relHasConcept, map[string]any{"relevance": edge.Relevance})
	return err
}

// LinkKeyword attaches memoryID to term via HAS_KEYWORD (no properties).
func (s *Service) LinkKeyword(ctx context.Context, memoryID, term string) error {
	return s.linkSimple(ctx, memoryID, labelKeyword, keyTerm, term, relHasKeyword)
}

// LinkTopic attaches memoryID to topicName via BELONGS_TO {isPrimary}.
func (s *Service) LinkTopic(ctx context.Context, memoryID, topicName string, isPrimary bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelTopic, keyName, topicName, relBelongsTo, map[string]any{"isPrimary": isPrimary})
	return err
}

// LinkEntity attaches memoryID to an Entity keyed by (name, type) via
// MENTIONS {role}.
func (s *Service) LinkEntity(ctx context.Context, memoryID string, entityKeyVal, role string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelEntity, keyKey, entityKeyVal, relMentions, map[string]any{"role": role})
	return err
}

// LinkSource attaches memoryID to a Source keyed by (reference, type) via
// FROM_SOURCE {excerpt}.
func (s *Service) LinkSource(ctx context.Context, memoryID string, sourceKeyVal, excerpt string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelSource, keyKey, sourceKeyVal, relFromSource, map[string]any{"excerpt": excerpt})
	return err
}

// LinkContext attaches memoryID to a Context keyed by (name, type) via
// IN_CONTEXT (no properties).
func (s *Service) LinkContext(ctx context.Context, memoryID, contextKeyVal string) error {
	return s.linkSimple(ctx, memoryID, labelContext, keyKey, contextKeyVal, relInContext)
}

// LinkDecision attaches memoryID to decisionID via INVOLVES (no properties).
func (s *Service) LinkDecision(ctx context.Context, memoryID, decisionID string) error {
	return s.linkSimple(ctx, memoryID, labelDecision, keyID, decisionID, relInvolves)
}

// LinkQuestion attaches memoryID to questionID via PARTIALLY_ANSWERS
// {completeness}.
func (s *Service) LinkQuestion(ctx context.Context, memoryID, questionID string, completeness float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	edge, err := domain.NewQuestionEdge(completeness)
	if err != nil {
		return err
	}
	_, err = s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelQuestion, keyID, questionID, relPartiallyAnswers, map[string]any{"completeness": edge.Completeness})
	return err
}

// LinkGoal attaches memoryID to goalID via SUPPORTS {strength}.
func (s *Service) LinkGoal(ctx context.Context, memoryID, goalID string, strength float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	edge, err := domain.NewGoalEdge(strength)
	if err != nil {
		return err
	}
	_, err = s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelGoal, keyID, goalID, relSupports, map[string]any{"strength": edge.Strength})
	return err
}

// LinkPreference attaches memoryID to a Preference keyed by (category,
// preference) via REFLECTS (no properties).
func (s *Service) LinkPreference(ctx context.Context, memoryID, preferenceKeyVal string) error {
	return s.linkSimple(ctx, memoryID, labelPreference, keyKey, preferenceKeyVal, relReflects)
}

// LinkTemporalMarker attaches memoryID to markerID via OCCURRED_AT (no
// properties).
func (s *Service) LinkTemporalMarker(ctx context.Context, memoryID, markerID string) error {
	return s.linkSimple(ctx, memoryID, labelTemporalMarker, keyID, markerID, relOccurredAt)
}

// LinkRelatedConcept connects two concepts via RELATED_CONCEPT.
func (s *Service) LinkRelatedConcept(ctx context.Context, fromConcept, toConcept string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelConcept, keyName, fromConcept, labelConcept, keyName, toConcept, relRelatedConcept, nil)
	return err
}

// LinkGoalDependsOn connects two goals via DEPENDS_ON.
func (s *Service) LinkGoalDependsOn(ctx context.Context, goalID, dependsOnGoalID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelGoal, keyID, goalID, labelGoal, keyID, dependsOnGoalID, relDependsOn, nil)
	return err
}

// LinkDecisionLedTo connects two decisions via LED_TO.
func (s *Service) LinkDecisionLedTo(ctx context.Context, decisionID, ledToDecisionID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelDecision, keyID, decisionID, labelDecision, keyID, ledToDecisionID, relLedTo, nil)
	return err
}

// LinkContextPartOf connects two contexts via PART_OF.
func (s *Service) LinkContextPartOf(ctx context.Context, contextKeyVal, parentContextKeyVal string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.store.UpsertEdge(ctx, labelContext, keyKey, contextKeyVal, labelContext, keyKey, parentContextKeyVal, relPartOf, nil)
	return err
}
