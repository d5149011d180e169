package memorygraph

import (
	"context"

	"axons/internal/apperr"
	"axons/internal/domain"
)

// MarkContradiction implements the supplemented mark_contradiction(memory_a,
// memory_b, description) operation (SPEC_FULL.md §3, restored from
// axons/client.py): creates a Contradiction node (status=unresolved) with
// CONFLICTS_WITH edges to both memories.
func (s *Service) MarkContradiction(ctx context.Context, memoryA, memoryB, description string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	c, err := domain.NewContradiction(description)
	if err != nil {
		return "", err
	}
	props := map[string]any{"id": c.ID.String(), "description": c.Description, "resolution": "", "status": string(c.Status)}
	if err := s.store.CreateNode(ctx, labelContradiction, props); err != nil {
		return "", err
	}
	if _, err := s.store.UpsertEdge(ctx, labelContradiction, keyID, c.ID.String(), labelMemory, keyID, memoryA, relConflictsWith, nil); err != nil {
		return "", err
	}
	if _, err := s.store.UpsertEdge(ctx, labelContradiction, keyID, c.ID.String(), labelMemory, keyID, memoryB, relConflictsWith, nil); err != nil {
		return "", err
	}
	return c.ID.String(), nil
}

// ResolveContradiction implements the supplemented resolve_contradiction
// (SPEC_FULL.md §3): per I4, status=resolved requires a SUPERSEDES edge to
// the superseding memory; with no superseding memory given the contradiction
// is marked accepted instead, recording the resolution without requiring one.
func (s *Service) ResolveContradiction(ctx context.Context, contradictionID string, supersedingMemoryID *string, resolution string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if _, found, err := s.store.FindNode(ctx, labelContradiction, keyID, contradictionID); err != nil {
		return err
	} else if !found {
		return apperr.NewNotFound(labelContradiction, contradictionID)
	}

	status := domain.ContradictionAccepted
	if supersedingMemoryID != nil && *supersedingMemoryID != "" {
		if _, err := s.store.UpsertEdge(ctx, labelContradiction, keyID, contradictionID, labelMemory, keyID, *supersedingMemoryID, relSupersedes, nil); err != nil {
			return err
		}
		status = domain.ContradictionResolved
	}
	return s.store.UpdateNode(ctx, labelContradiction, keyID, contradictionID, map[string]any{
		"status": string(status), "resolution": resolution,
	})
}

// GetMemoryLinkStrength is a thin read accessor used by plasticity test
// scenarios (SPEC_FULL.md §3): the current RELATES_TO strength a->b, or
// false if no such edge exists.
func (s *Service) GetMemoryLinkStrength(ctx context.Context, a, b string) (float64, bool, error) {
	if err := s.checkOpen(); err != nil {
		return 0, false, err
	}
	edge, found, err := s.store.GetEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}
	return toFloat(edge["strength"]), true, nil
}
