// Package memorygraph implements C4, the public service facade that
// orchestrates C1 (plasticity), C2 (permeability), and C3 (graph store) into
// the operations described in spec.md §4.1, plus the supplemental operations
// carried over from the original client (contradiction tracking, context
// export — see SPEC_FULL.md §3).
package memorygraph

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"axons/internal/apperr"
	"axons/internal/domain"
	"axons/internal/graphstore"
	"axons/internal/permeability"
	"axons/internal/plasticity"
)

// Node labels and key fields, matching internal/graphstore/schema.go.
const (
	labelMemory         = "Memory"
	labelConcept        = "Concept"
	labelKeyword        = "Keyword"
	labelTopic          = "Topic"
	labelEntity         = "Entity"
	labelSource         = "Source"
	labelDecision       = "Decision"
	labelGoal           = "Goal"
	labelQuestion       = "Question"
	labelContext        = "Context"
	labelPreference     = "Preference"
	labelTemporalMarker = "TemporalMarker"
	labelContradiction  = "Contradiction"
	labelCompartment    = "Compartment"

	keyID   = "id"
	keyName = "name"
	keyTerm = "term"
	keyKey  = "_key"
)

// Relation types, matching internal/graphstore/schema.go's RelationTypes.
const (
	relHasConcept        = "HAS_CONCEPT"
	relHasKeyword        = "HAS_KEYWORD"
	relBelongsTo         = "BELONGS_TO"
	relMentions          = "MENTIONS"
	relFromSource        = "FROM_SOURCE"
	relInContext         = "IN_CONTEXT"
	relInvolves          = "INVOLVES"
	relPartiallyAnswers  = "PARTIALLY_ANSWERS"
	relSupports          = "SUPPORTS"
	relReflects          = "REFLECTS"
	relOccurredAt        = "OCCURRED_AT"
	relRelatesTo         = "RELATES_TO"
	relInCompartment     = "IN_COMPARTMENT"
	relRelatedConcept    = "RELATED_CONCEPT"
	relDependsOn         = "DEPENDS_ON"
	relLedTo             = "LED_TO"
	relPartOf            = "PART_OF"
	relConflictsWith     = "CONFLICTS_WITH"
	relSupersedes        = "SUPERSEDES"
)

// Service is C4: the single entry point agents use to read and write the
// memory graph. One Service owns one active compartment and one
// process-local maintenance-cycle counter (spec §5, §9.3); it is not safe to
// share a single Service's active-compartment state across concurrent
// callers representing different agents.
type Service struct {
	mu     sync.Mutex
	store  graphstore.GraphOps
	plast  *plasticity.Config
	logger *zap.Logger

	activeCompartment string // domain.CompartmentID, or "" if unset
	cycle             int
	closed            bool
}

// New constructs a Service. plast defaults to plasticity.Default() if nil.
func New(store graphstore.GraphOps, plast *plasticity.Config, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, apperr.NewMissingRequired("store")
	}
	if plast == nil {
		plast = plasticity.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, plast: plast, logger: logger}, nil
}

// Close marks the service unusable; every subsequent call returns
// ClosedClient. It does not close the underlying graphstore.GraphOps, which
// may be shared with other services (spec.md §9 supplemented close()
// behavior — mirrors a client-side session close, not a connection-pool
// teardown).
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Service) checkOpen() error {
	if s.closed {
		return apperr.NewClosedClient()
	}
	return nil
}

// resolveCompartment implements create_memory's compartment-selection rule
// (spec §4.1): compartmentID == nil means "not supplied" (use the active
// compartment); a non-nil pointer — including one pointing at "" — is the
// caller's explicit choice, and "" explicitly suppresses compartment
// assignment.
func (s *Service) resolveCompartment(compartmentID *string) string {
	if compartmentID == nil {
		return s.activeCompartment
	}
	return *compartmentID
}

// loadMemoryFlow gathers the permeability-relevant state for one memory:
// its own Permeability plus every compartment it belongs to, as consumed by
// C2 (internal/permeability).
func (s *Service) loadMemoryFlow(ctx context.Context, memoryID string) (permeability.MemoryFlow, error) {
	record, found, err := s.store.FindNode(ctx, labelMemory, keyID, memoryID)
	if err != nil {
		return permeability.MemoryFlow{}, err
	}
	if !found {
		return permeability.MemoryFlow{}, apperr.NewNotFound(labelMemory, memoryID)
	}
	flow := permeability.MemoryFlow{Permeability: domain.Permeability(toStr(record["permeability"]))}

	memberships, err := s.store.EdgesFrom(ctx, labelMemory, keyID, memoryID, labelCompartment, relInCompartment)
	if err != nil {
		return permeability.MemoryFlow{}, err
	}
	for _, m := range memberships {
		flow.Compartments = append(flow.Compartments, domain.Membership{
			CompartmentID:            domain.CompartmentID(toStr(m.Peer[keyName])),
			Permeability:             domain.Permeability(toStr(m.Peer["permeability"])),
			AllowExternalConnections: toBool(m.Peer["allowExternalConnections"]),
		})
	}
	return flow, nil
}

func toStr(v any) string {
	s, _ := v.(string)
	return s
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func entityKey(name string, typ domain.EntityType) string {
	return name + "::" + string(typ)
}

func sourceKey(reference string, typ domain.SourceType) string {
	return reference + "::" + string(typ)
}

func contextKey(name string, typ domain.ContextType) string {
	return name + "::" + string(typ)
}

func preferenceKey(category, preference string) string {
	return category + "::" + preference
}
