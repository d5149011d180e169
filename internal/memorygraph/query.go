package memorygraph

import (
	"context"
	"sort"

	"axons/internal/domain"
	"axons/internal/graphstore"
	"axons/internal/permeability"
)

// SearchMemories implements spec §4.1's search_memories: full-text BM25 when
// the store offers it, substring fallback otherwise (delegated entirely to
// C3, which owns the fallback decision since only it knows FTSAvailable()).
func (s *Service) SearchMemories(ctx context.Context, term string, limit int) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.store.SearchMemories(ctx, term, limit)
}

// GetRelatedMemories implements spec §4.1's get_related_memories: the union
// of memories sharing a Concept or Keyword with memoryID, over-fetched 3x
// and narrowed by C2's BatchFilter when respectPermeability is set.
func (s *Service) GetRelatedMemories(ctx context.Context, memoryID string, limit int, respectPermeability bool) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	fetchLimit := limit * 3
	if fetchLimit <= 0 {
		fetchLimit = limit
	}

	concepts, err := s.store.EdgesFrom(ctx, labelMemory, keyID, memoryID, labelConcept, relHasConcept)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{memoryID: true}
	var candidates []graphstore.Record
	for _, c := range concepts {
		conceptName, _ := c.Peer[keyName].(string)
		peers, err := s.store.EdgesTo(ctx, labelConcept, keyName, conceptName, labelMemory, relHasConcept)
		if err != nil {
			return nil, err
		}
		for _, p := range peers {
			id, _ := p.Peer[keyID].(string)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			candidates = append(candidates, p.Peer)
		}
	}

	keywords, err := s.store.EdgesFrom(ctx, labelMemory, keyID, memoryID, labelKeyword, relHasKeyword)
	if err != nil {
		return nil, err
	}
	for _, k := range keywords {
		term, _ := k.Peer[keyTerm].(string)
		peers, err := s.store.EdgesTo(ctx, labelKeyword, keyTerm, term, labelMemory, relHasKeyword)
		if err != nil {
			return nil, err
		}
		for _, p := range peers {
			id, _ := p.Peer[keyID].(string)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			candidates = append(candidates, p.Peer)
		}
	}

	if len(candidates) > fetchLimit {
		candidates = candidates[:fetchLimit]
	}

	if respectPermeability {
		requesterFlow, err := s.loadMemoryFlow(ctx, memoryID)
		if err != nil {
			return nil, err
		}
		flows := make([]permeability.MemoryFlow, len(candidates))
		for i, c := range candidates {
			id, _ := c[keyID].(string)
			flow, err := s.loadMemoryFlow(ctx, id)
			if err != nil {
				return nil, err
			}
			flows[i] = flow
		}
		kept := permeability.BatchFilter(requesterFlow, flows)
		filtered := make([]graphstore.Record, len(kept))
		for i, idx := range kept {
			filtered[i] = candidates[idx]
		}
		candidates = filtered
	}

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// getMemoriesByPeer is the shared body for get_memories_by_{concept,keyword,
// topic,entity}: every Memory connected to a single interned peer node.
func (s *Service) getMemoriesByPeer(ctx context.Context, peerLabel, peerKeyField string, peerKey any, relType string) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	edges, err := s.store.EdgesTo(ctx, peerLabel, peerKeyField, peerKey, labelMemory, relType)
	if err != nil {
		return nil, err
	}
	out := make([]graphstore.Record, len(edges))
	for i, e := range edges {
		out[i] = e.Peer
	}
	return out, nil
}

// GetMemoriesByConcept implements get_memories_by_concept, applying
// retrieval side-effects to each returned memory (via_concept_id=conceptName,
// spec §4.1).
func (s *Service) GetMemoriesByConcept(ctx context.Context, conceptName string) ([]graphstore.Record, error) {
	out, err := s.getMemoriesByPeer(ctx, labelConcept, keyName, conceptName, relHasConcept)
	if err != nil {
		return nil, err
	}
	if s.plast.RetrievalStrengthens {
		for _, m := range out {
			id, _ := m[keyID].(string)
			if id == "" {
				continue
			}
			if err := s.applyRetrievalEffects(ctx, id, &conceptName); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// GetMemoriesByKeyword implements get_memories_by_keyword.
func (s *Service) GetMemoriesByKeyword(ctx context.Context, term string) ([]graphstore.Record, error) {
	return s.getMemoriesByPeer(ctx, labelKeyword, keyTerm, term, relHasKeyword)
}

// GetMemoriesByTopic implements get_memories_by_topic.
func (s *Service) GetMemoriesByTopic(ctx context.Context, topicName string) ([]graphstore.Record, error) {
	return s.getMemoriesByPeer(ctx, labelTopic, keyName, topicName, relBelongsTo)
}

// GetMemoriesByEntity implements get_memories_by_entity.
func (s *Service) GetMemoriesByEntity(ctx context.Context, entityKeyVal string) ([]graphstore.Record, error) {
	return s.getMemoriesByPeer(ctx, labelEntity, keyKey, entityKeyVal, relMentions)
}

// connectionEdges collects every Memory-Memory RELATES_TO edge in the graph,
// for whole-graph passes (statistics).
func (s *Service) connectionEdges(ctx context.Context) ([]graphstore.EdgePair, error) {
	return s.store.AllEdges(ctx, labelMemory, keyID, labelMemory, keyID, relRelatesTo)
}

// memoryConnections gathers memoryID's outgoing RELATES_TO edges, optionally
// narrowed by C2's BatchFilter (over-fetch ×3, as get_related_memories does).
func (s *Service) memoryConnections(ctx context.Context, memoryID string, limit int, respectPermeability bool) ([]graphstore.Edge, error) {
	fetchLimit := limit * 3
	if fetchLimit <= 0 {
		fetchLimit = limit
	}
	edges, err := s.store.EdgesFrom(ctx, labelMemory, keyID, memoryID, labelMemory, relRelatesTo)
	if err != nil {
		return nil, err
	}
	if fetchLimit > 0 && len(edges) > fetchLimit {
		edges = edges[:fetchLimit]
	}

	if respectPermeability {
		requesterFlow, err := s.loadMemoryFlow(ctx, memoryID)
		if err != nil {
			return nil, err
		}
		flows := make([]permeability.MemoryFlow, len(edges))
		for i, e := range edges {
			peerID, _ := e.Peer[keyID].(string)
			flow, err := s.loadMemoryFlow(ctx, peerID)
			if err != nil {
				return nil, err
			}
			flows[i] = flow
		}
		kept := permeability.BatchFilter(requesterFlow, flows)
		filtered := make([]graphstore.Edge, len(kept))
		for i, idx := range kept {
			filtered[i] = edges[idx]
		}
		edges = filtered
	}
	return edges, nil
}

// GetStrongestConnections implements get_strongest_connections(memory_id,
// limit, respect_permeability): memoryID's own connections, strongest first.
func (s *Service) GetStrongestConnections(ctx context.Context, memoryID string, limit int, respectPermeability bool) ([]graphstore.Edge, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	edges, err := s.memoryConnections(ctx, memoryID, limit, respectPermeability)
	if err != nil {
		return nil, err
	}
	sort.Slice(edges, func(i, j int) bool {
		return toFloat(edges[i].RelProps["strength"]) > toFloat(edges[j].RelProps["strength"])
	})
	if limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}
	return edges, nil
}

// GetWeakestConnections implements get_weakest_connections(memory_id, limit,
// respect_permeability): memoryID's own connections, weakest first.
func (s *Service) GetWeakestConnections(ctx context.Context, memoryID string, limit int, respectPermeability bool) ([]graphstore.Edge, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	edges, err := s.memoryConnections(ctx, memoryID, limit, respectPermeability)
	if err != nil {
		return nil, err
	}
	sort.Slice(edges, func(i, j int) bool {
		return toFloat(edges[i].RelProps["strength"]) < toFloat(edges[j].RelProps["strength"])
	})
	if limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}
	return edges, nil
}

// GetOpenQuestions implements get_open_questions: every Question node whose
// status is "open" or "partial".
func (s *Service) GetOpenQuestions(ctx context.Context) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	all, err := s.store.ListNodes(ctx, labelQuestion, nil)
	if err != nil {
		return nil, err
	}
	var out []graphstore.Record
	for _, q := range all {
		status := domain.QuestionStatus(toStr(q["status"]))
		if status == domain.QuestionOpen || status == domain.QuestionPartial {
			out = append(out, q)
		}
	}
	return out, nil
}

// GetActiveGoals implements get_active_goals: every Goal node whose status
// is "active".
func (s *Service) GetActiveGoals(ctx context.Context) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.store.ListNodes(ctx, labelGoal, graphstore.Params{"status": string(domain.GoalActive)})
}

// GetUnresolvedContradictions implements get_unresolved_contradictions.
func (s *Service) GetUnresolvedContradictions(ctx context.Context) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.store.ListNodes(ctx, labelContradiction, graphstore.Params{"status": string(domain.ContradictionUnresolved)})
}

// GetPreferencesByCategory implements get_preferences_by_category, sorted
// by strength descending.
func (s *Service) GetPreferencesByCategory(ctx context.Context, category string) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	prefs, err := s.store.ListNodes(ctx, labelPreference, graphstore.Params{"category": category})
	if err != nil {
		return nil, err
	}
	sort.Slice(prefs, func(i, j int) bool {
		return toFloat(prefs[i]["strength"]) > toFloat(prefs[j]["strength"])
	})
	return prefs, nil
}

// GetDecisionChain implements get_decision_chain: the union of decisionID's
// direct LED_TO predecessors and direct LED_TO successors (spec §4.1,
// single-hop in each direction — no traversal depth).
func (s *Service) GetDecisionChain(ctx context.Context, decisionID string) ([]graphstore.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	successors, err := s.store.EdgesFrom(ctx, labelDecision, keyID, decisionID, labelDecision, relLedTo)
	if err != nil {
		return nil, err
	}
	predecessors, err := s.store.EdgesTo(ctx, labelDecision, keyID, decisionID, labelDecision, relLedTo)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(successors)+len(predecessors))
	var chain []graphstore.Record
	for _, edges := range [][]graphstore.Edge{predecessors, successors} {
		for _, e := range edges {
			id, _ := e.Peer[keyID].(string)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			chain = append(chain, e.Peer)
		}
	}
	return chain, nil
}

// ConnectionStatistics is the result of get_connection_statistics (spec
// §4.1): distribution summary over every RELATES_TO edge's strength.
type ConnectionStatistics struct {
	Count               int
	Min, Max, Avg        float64
	Histogram           [10]int // bucket i covers [i/10, (i+1)/10); bucket 9 also holds 1.0
	BelowDecayThreshold int
	AtOrBelowPruneThreshold int
}

// GetConnectionStatistics implements get_connection_statistics.
func (s *Service) GetConnectionStatistics(ctx context.Context) (ConnectionStatistics, error) {
	if err := s.checkOpen(); err != nil {
		return ConnectionStatistics{}, err
	}
	edges, err := s.connectionEdges(ctx)
	if err != nil {
		return ConnectionStatistics{}, err
	}
	stats := ConnectionStatistics{}
	if len(edges) == 0 {
		return stats, nil
	}
	stats.Count = len(edges)
	stats.Min = 1.0
	var sum float64
	for _, e := range edges {
		strength := toFloat(e.RelProps["strength"])
		if strength < stats.Min {
			stats.Min = strength
		}
		if strength > stats.Max {
			stats.Max = strength
		}
		sum += strength

		bucket := int(strength * 10)
		if bucket < 0 {
			bucket = 0
		}
		if bucket > 9 {
			bucket = 9
		}
		stats.Histogram[bucket]++

		if strength < s.plast.DecayThreshold {
			stats.BelowDecayThreshold++
		}
		if strength <= s.plast.PruneThreshold {
			stats.AtOrBelowPruneThreshold++
		}
	}
	stats.Avg = sum / float64(len(edges))
	return stats, nil
}
