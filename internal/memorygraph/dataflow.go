package memorygraph

import (
	"context"

	"axons/internal/apperr"
	"axons/internal/domain"
	"axons/internal/permeability"
)

// SetMemoryPermeability implements §6.1's set_permeability(memory_id, value)
// branch: a direct update of one memory's own flow policy, independent of
// any compartment it belongs to.
func (s *Service) SetMemoryPermeability(ctx context.Context, memoryID string, value domain.Permeability) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if !value.Valid() {
		return apperr.NewOutOfRange("permeability", 0, 0, 0)
	}
	if _, found, err := s.store.FindNode(ctx, labelMemory, keyID, memoryID); err != nil {
		return err
	} else if !found {
		return apperr.NewNotFound(labelMemory, memoryID)
	}
	return s.store.UpdateNode(ctx, labelMemory, keyID, memoryID, map[string]any{"permeability": string(value)})
}

// CheckDataFlow implements can_data_flow(from, to) (spec §4.2.2) over two
// memories, with no explicit connection-permeability override — the public
// surface's variant, as opposed to get_related_memories'/BatchFilter's
// internal per-candidate use of the same rule.
func (s *Service) CheckDataFlow(ctx context.Context, from, to string) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	flowFrom, err := s.loadMemoryFlow(ctx, from)
	if err != nil {
		return false, err
	}
	flowTo, err := s.loadMemoryFlow(ctx, to)
	if err != nil {
		return false, err
	}
	return permeability.CanDataFlow(flowFrom, flowTo, nil), nil
}
