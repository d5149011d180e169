package memorygraph

import (
	"context"

	"axons/internal/graphstore"
)

// DeleteAll implements delete_all (spec §3.4): wholesale DETACH DELETE of
// every node across all 14 §6.2 node tables, grounded on the original
// implementation's delete_all_data(). Unlike DeleteCompartment (§I5,
// targeted), this has no reassignment step — every node and every edge
// touching it is gone.
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	for _, label := range graphstore.NodeLabels {
		if err := s.store.DeleteAllNodes(ctx, label); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.activeCompartment = ""
	s.mu.Unlock()
	return nil
}
