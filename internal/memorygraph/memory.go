package memorygraph

import (
	"context"
	"time"

	"axons/internal/apperr"
	"axons/internal/domain"
	"axons/internal/plasticity"
)

// CreateMemory inserts a new Memory and assigns it to a compartment per
// spec §4.1: compartmentID == nil uses the service's active compartment;
// a non-nil pointer is the caller's explicit choice (including "" to
// suppress assignment entirely).
func (s *Service) CreateMemory(ctx context.Context, content, summary string, confidence float64, perm domain.Permeability, compartmentID *string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	m, err := domain.NewMemory(content, summary, confidence, perm)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"id": m.ID.String(), "content": m.Content, "summary": m.Summary,
		"created": m.Created, "lastAccessed": m.LastAccessed, "accessCount": m.AccessCount,
		"confidence": m.Confidence, "permeability": string(m.Permeability),
	}
	if err := s.store.CreateNode(ctx, labelMemory, props); err != nil {
		return "", err
	}

	if compartment := s.resolveCompartment(compartmentID); compartment != "" {
		if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, m.ID.String(), labelCompartment, keyName, compartment, relInCompartment, nil); err != nil {
			return "", err
		}
	}
	return m.ID.String(), nil
}

// GetMemory implements spec §4.1's get_memory: bumps lastAccessed/accessCount
// with a read (FindNode) followed by a separate write (UpdateNode), not one
// atomic store operation, then optionally applies retrieval side-effects.
func (s *Service) GetMemory(ctx context.Context, id string, applyRetrievalEffects bool) (map[string]any, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	record, found, err := s.store.FindNode(ctx, labelMemory, keyID, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NewNotFound(labelMemory, id)
	}

	accessCount := int(toFloat(record["accessCount"])) + 1
	now := time.Now()
	update := map[string]any{"lastAccessed": now, "accessCount": accessCount}
	if err := s.store.UpdateNode(ctx, labelMemory, keyID, id, update); err != nil {
		return nil, err
	}
	record["lastAccessed"] = now
	record["accessCount"] = accessCount

	if applyRetrievalEffects && s.plast.RetrievalStrengthens {
		if err := s.applyRetrievalEffects(ctx, id, nil); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// applyRetrievalEffects implements spec §4.1's
// `_apply_retrieval_effects(memory_id, via_concept_id?)`.
func (s *Service) applyRetrievalEffects(ctx context.Context, memoryID string, viaConceptID *string) error {
	incoming, err := s.store.EdgesTo(ctx, labelMemory, keyID, memoryID, labelMemory, relRelatesTo)
	if err != nil {
		return err
	}
	for _, edge := range incoming {
		peerID, _ := edge.Peer[keyID].(string)
		strength := toFloat(edge.RelProps["strength"])
		effective := s.plast.EffectiveAmount(plasticity.ContextRetrieval, strength)
		newStrength := strength + effective
		if newStrength > s.plast.MaxStrength {
			newStrength = s.plast.MaxStrength
		}
		if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, peerID, labelMemory, keyID, memoryID, relRelatesTo, map[string]any{"strength": newStrength}); err != nil {
			return err
		}
	}

	if viaConceptID != nil {
		existing, found, err := s.store.GetEdge(ctx, labelMemory, keyID, memoryID, labelConcept, keyName, *viaConceptID, relHasConcept)
		if err != nil {
			return err
		}
		if found {
			relevance := toFloat(existing["relevance"]) + s.plast.RetrievalAmount*s.plast.LearningRate
			if relevance > 1.0 {
				relevance = 1.0
			}
			if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, memoryID, labelConcept, keyName, *viaConceptID, relHasConcept, map[string]any{"relevance": relevance}); err != nil {
				return err
			}
		}
	}

	if s.plast.RetrievalWeakensCompetitors {
		neighbors, err := s.store.EdgesFrom(ctx, labelMemory, keyID, memoryID, labelMemory, relRelatesTo)
		if err != nil {
			return err
		}
		amount := s.plast.WeakenAmount * s.plast.LearningRate * s.plast.CompetitorDistance
		for _, n := range neighbors {
			neighborID, _ := n.Peer[keyID].(string)
			others, err := s.store.EdgesFrom(ctx, labelMemory, keyID, neighborID, labelMemory, relRelatesTo)
			if err != nil {
				return err
			}
			for _, o := range others {
				otherID, _ := o.Peer[keyID].(string)
				if otherID == memoryID {
					continue
				}
				strength := toFloat(o.RelProps["strength"])
				newStrength := strength - amount
				if newStrength < s.plast.MinStrength {
					newStrength = s.plast.MinStrength
				}
				if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, neighborID, labelMemory, keyID, otherID, relRelatesTo, map[string]any{"strength": newStrength}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
