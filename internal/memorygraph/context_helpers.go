package memorygraph

import (
	"context"

	"axons/internal/graphstore"
)

// GetMemoryContext implements the supplemented get_memory_context(id, depth)
// (SPEC_FULL.md §3): a bounded neighborhood walk built entirely from
// get_related_memories and get_strongest_connections, so it adds no new
// storage shape. depth is clamped to [1,3].
func (s *Service) GetMemoryContext(ctx context.Context, id string, depth int) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if depth < 1 {
		depth = 1
	}
	if depth > 3 {
		depth = 3
	}

	seen := map[string]bool{id: true}
	frontier := []string{id}
	var neighborhood []graphstore.Record

	for i := 0; i < depth; i++ {
		var next []string
		for _, memID := range frontier {
			related, err := s.GetRelatedMemories(ctx, memID, 10, true)
			if err != nil {
				return nil, err
			}
			connections, err := s.GetStrongestConnections(ctx, memID, 10, true)
			if err != nil {
				return nil, err
			}
			for _, r := range related {
				rid, _ := r[keyID].(string)
				if rid == "" || seen[rid] {
					continue
				}
				seen[rid] = true
				neighborhood = append(neighborhood, r)
				next = append(next, rid)
			}
			for _, c := range connections {
				peerID, _ := c.Peer[keyID].(string)
				if peerID == "" || seen[peerID] {
					continue
				}
				seen[peerID] = true
				neighborhood = append(neighborhood, c.Peer)
				next = append(next, peerID)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return neighborhood, nil
}

// CompartmentExport is the result of export_compartment: the resident memory
// ids plus their membership edges.
type CompartmentExport struct {
	CompartmentName string
	MemoryIDs       []string
	Memberships     []graphstore.Edge
}

// ExportCompartment implements the supplemented export_compartment(id)
// (SPEC_FULL.md §3): used by callers to confirm I5 before a destructive
// compartment delete.
func (s *Service) ExportCompartment(ctx context.Context, compartmentName string) (CompartmentExport, error) {
	if err := s.checkOpen(); err != nil {
		return CompartmentExport{}, err
	}
	residents, err := s.store.EdgesTo(ctx, labelCompartment, keyName, compartmentName, labelMemory, relInCompartment)
	if err != nil {
		return CompartmentExport{}, err
	}
	export := CompartmentExport{CompartmentName: compartmentName, Memberships: residents}
	for _, r := range residents {
		if id, ok := r.Peer[keyID].(string); ok && id != "" {
			export.MemoryIDs = append(export.MemoryIDs, id)
		}
	}
	return export, nil
}
