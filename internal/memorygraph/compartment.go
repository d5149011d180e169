package memorygraph

import (
	"context"

	"axons/internal/apperr"
	"axons/internal/domain"
	"axons/internal/graphstore"
)

// CreateCompartment implements create_compartment. Compartments are interned
// by name (§3.1): calling this again for an existing name is a no-op update
// of its properties, not a duplicate.
func (s *Service) CreateCompartment(ctx context.Context, name string, perm domain.Permeability, allowExternal bool, description string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	c, err := domain.NewCompartment(name, perm, allowExternal, description)
	if err != nil {
		return "", err
	}
	_, found, err := s.store.FindNode(ctx, labelCompartment, keyName, c.Name)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"name": c.Name, "permeability": string(c.Permeability),
		"allowExternalConnections": c.AllowExternalConnections, "description": c.Description,
	}
	if found {
		if err := s.store.UpdateNode(ctx, labelCompartment, keyName, c.Name, props); err != nil {
			return "", err
		}
		return c.Name, nil
	}
	if err := s.store.CreateNode(ctx, labelCompartment, props); err != nil {
		return "", err
	}
	return c.Name, nil
}

// GetCompartment implements get_compartment.
func (s *Service) GetCompartment(ctx context.Context, name string) (graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	record, found, err := s.store.FindNode(ctx, labelCompartment, keyName, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NewNotFound(labelCompartment, name)
	}
	return record, nil
}

// ListCompartments implements list_compartments.
func (s *Service) ListCompartments(ctx context.Context) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.store.ListNodes(ctx, labelCompartment, nil)
}

// UpdateCompartment implements update_compartment: merges non-nil fields
// into the existing node.
func (s *Service) UpdateCompartment(ctx context.Context, name string, perm *domain.Permeability, allowExternal *bool, description *string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if _, found, err := s.store.FindNode(ctx, labelCompartment, keyName, name); err != nil {
		return err
	} else if !found {
		return apperr.NewNotFound(labelCompartment, name)
	}
	props := map[string]any{}
	if perm != nil {
		if !perm.Valid() {
			return apperr.NewOutOfRange("permeability", 0, 0, 0)
		}
		props["permeability"] = string(*perm)
	}
	if allowExternal != nil {
		props["allowExternalConnections"] = *allowExternal
	}
	if description != nil {
		props["description"] = *description
	}
	if len(props) == 0 {
		return nil
	}
	return s.store.UpdateNode(ctx, labelCompartment, keyName, name, props)
}

// DeleteCompartment implements delete_compartment, enforcing I5: deleting a
// compartment with resident memories is only allowed when reassignMemories
// is true, in which case residents are detached (left in no compartment)
// rather than deleted themselves.
func (s *Service) DeleteCompartment(ctx context.Context, name string, reassignMemories bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	residents, err := s.store.EdgesTo(ctx, labelCompartment, keyName, name, labelMemory, relInCompartment)
	if err != nil {
		return err
	}
	if len(residents) > 0 && !reassignMemories {
		return apperr.NewCompartmentInUse(name, len(residents))
	}
	for _, r := range residents {
		memID, _ := r.Peer[keyID].(string)
		if memID == "" {
			continue
		}
		if err := s.store.DeleteEdge(ctx, labelMemory, keyID, memID, labelCompartment, keyName, name, relInCompartment); err != nil {
			return err
		}
	}
	if s.activeCompartment == name {
		s.mu.Lock()
		s.activeCompartment = ""
		s.mu.Unlock()
	}
	return s.store.DeleteNode(ctx, labelCompartment, keyName, name)
}

// SetActiveCompartment implements set_active_compartment(id_or_none): nil
// clears the active compartment.
func (s *Service) SetActiveCompartment(ctx context.Context, compartmentID *string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if compartmentID == nil {
		s.activeCompartment = ""
		return nil
	}
	s.activeCompartment = *compartmentID
	return nil
}

// AddMemoryToCompartment implements add_memory_to_compartment(ids,
// compartment): merge semantics, a duplicate membership is a no-op since
// UpsertEdge is idempotent.
func (s *Service) AddMemoryToCompartment(ctx context.Context, memoryIDs []string, compartmentName string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	for _, id := range memoryIDs {
		if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, id, labelCompartment, keyName, compartmentName, relInCompartment, nil); err != nil {
			return err
		}
	}
	return nil
}

// RemoveMemoryFromCompartment implements remove_memory_from_compartment(ids,
// compartment?): compartment == nil removes every IN_COMPARTMENT membership
// for each memory.
func (s *Service) RemoveMemoryFromCompartment(ctx context.Context, memoryIDs []string, compartmentName *string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	for _, id := range memoryIDs {
		if compartmentName != nil {
			if err := s.store.DeleteEdge(ctx, labelMemory, keyID, id, labelCompartment, keyName, *compartmentName, relInCompartment); err != nil {
				return err
			}
			continue
		}
		memberships, err := s.store.EdgesFrom(ctx, labelMemory, keyID, id, labelCompartment, relInCompartment)
		if err != nil {
			return err
		}
		for _, m := range memberships {
			name, _ := m.Peer[keyName].(string)
			if name == "" {
				continue
			}
			if err := s.store.DeleteEdge(ctx, labelMemory, keyID, id, labelCompartment, keyName, name, relInCompartment); err != nil {
				return err
			}
		}
	}
	return nil
}
