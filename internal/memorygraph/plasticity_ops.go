package memorygraph

import (
	"context"
	"time"

	"axons/internal/domain"
	"axons/internal/permeability"
	"axons/internal/plasticity"
)

// StrengthenMemoryLink implements spec §4.1's symmetric strengthen contract.
// Creates the edge (relType=explicit, permeability=Open) if none exists.
func (s *Service) StrengthenMemoryLink(ctx context.Context, a, b string, amount *float64) (float64, error) {
	return s.adjustMemoryLink(ctx, a, b, amount, plasticity.ContextStrengthen, true)
}

// WeakenMemoryLink implements spec §4.1's symmetric weaken contract.
func (s *Service) WeakenMemoryLink(ctx context.Context, a, b string, amount *float64) (float64, error) {
	return s.adjustMemoryLink(ctx, a, b, amount, plasticity.ContextWeaken, false)
}

func (s *Service) adjustMemoryLink(ctx context.Context, a, b string, amount *float64, plastCtx plasticity.Context, increase bool) (float64, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	existing, found, err := s.store.GetEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo)
	if err != nil {
		return 0, err
	}
	current := 0.0
	relType := string(domain.RelExplicit)
	perm := string(domain.Open)
	if found {
		current = toFloat(existing["strength"])
		if rt := toStr(existing["relType"]); rt != "" {
			relType = rt
		}
		if p := toStr(existing["permeability"]); p != "" {
			perm = p
		}
	}

	var effective float64
	if amount != nil {
		effective = s.plast.ExplicitAmount(*amount)
	} else {
		effective = s.plast.EffectiveAmount(plastCtx, current)
	}
	if effective <= 0 {
		return current, nil
	}

	var newStrength float64
	if increase {
		newStrength = current + effective
		if newStrength > s.plast.MaxStrength {
			newStrength = s.plast.MaxStrength
		}
	} else {
		newStrength = current - effective
		if newStrength < s.plast.MinStrength {
			newStrength = s.plast.MinStrength
		}
	}

	_, err = s.store.UpsertEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo, map[string]any{
		"strength": newStrength, "relType": relType, "permeability": perm, "updatedAt": time.Now(),
	})
	if err != nil {
		return 0, err
	}
	return newStrength, nil
}

// ApplyHebbianLearning implements spec §4.1's apply_hebbian_learning: for
// every unordered pair of memoryIDs, create or strengthen the co-access
// connection.
func (s *Service) ApplyHebbianLearning(ctx context.Context, memoryIDs []string, amount *float64, respectCompartments bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	for i := 0; i < len(memoryIDs); i++ {
		for j := i + 1; j < len(memoryIDs); j++ {
			if err := s.hebbianPair(ctx, memoryIDs[i], memoryIDs[j], amount, respectCompartments); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) hebbianPair(ctx context.Context, a, b string, amount *float64, respectCompartments bool) error {
	fwd, foundFwd, err := s.store.GetEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo)
	if err != nil {
		return err
	}
	rev, foundRev, err := s.store.GetEdge(ctx, labelMemory, keyID, b, labelMemory, keyID, a, relRelatesTo)
	if err != nil {
		return err
	}

	if !foundFwd && !foundRev {
		if !s.plast.HebbianCreatesConnections {
			return nil
		}
		if respectCompartments {
			flowA, err := s.loadMemoryFlow(ctx, a)
			if err != nil {
				return err
			}
			flowB, err := s.loadMemoryFlow(ctx, b)
			if err != nil {
				return err
			}
			if !permeability.CanFormConnection(flowA, flowB) {
				return nil
			}
		}
		initial := s.initialHebbianStrength(ctx, a, b)
		now := time.Now()
		props := map[string]any{
			"strength": initial, "relType": string(domain.RelHebbian),
			"permeability": string(domain.Open), "createdAt": now, "updatedAt": now,
		}
		if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, a, labelMemory, keyID, b, relRelatesTo, props); err != nil {
			return err
		}
		if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, b, labelMemory, keyID, a, relRelatesTo, props); err != nil {
			return err
		}
		return nil
	}

	if foundFwd {
		if err := s.hebbianStrengthenExisting(ctx, a, b, fwd, amount); err != nil {
			return err
		}
	}
	if foundRev {
		if err := s.hebbianStrengthenExisting(ctx, b, a, rev, amount); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) hebbianStrengthenExisting(ctx context.Context, from, to string, edge map[string]any, amount *float64) error {
	current := toFloat(edge["strength"])
	var effective float64
	if amount != nil {
		effective = *amount * s.plast.LearningRate
	} else {
		effective = s.plast.EffectiveAmount(plasticity.ContextHebbian, current)
	}
	if effective <= 0 {
		return nil
	}
	newStrength := current + effective
	if newStrength > s.plast.MaxStrength {
		newStrength = s.plast.MaxStrength
	}
	_, err := s.store.UpsertEdge(ctx, labelMemory, keyID, from, labelMemory, keyID, to, relRelatesTo, map[string]any{
		"strength": newStrength, "updatedAt": time.Now(),
	})
	return err
}

// initialHebbianStrength resolves C1's implicit initial strength, boosted
// by semantic similarity between the two memories' content when the policy
// enables it.
func (s *Service) initialHebbianStrength(ctx context.Context, a, b string) float64 {
	if !s.plast.SimilarityEnabled {
		return s.plast.GetInitialStrength(false, "", "")
	}
	memA, foundA, errA := s.store.FindNode(ctx, labelMemory, keyID, a)
	memB, foundB, errB := s.store.FindNode(ctx, labelMemory, keyID, b)
	if errA != nil || errB != nil || !foundA || !foundB {
		return s.plast.GetInitialStrength(false, "", "")
	}
	return s.plast.GetInitialStrength(false, toStr(memA["content"]), toStr(memB["content"]))
}

// DecayWeakConnections implements spec §4.1's decay_weak_connections.
// Overrides fall back to the plasticity config; cycles advanced is the
// service's process-local access-cycle counter (spec §9.3), floored at 1 so
// a call before the first run_maintenance_cycle still decays.
func (s *Service) DecayWeakConnections(ctx context.Context, threshold, decayAmount *float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	th := s.plast.DecayThreshold
	if threshold != nil {
		th = *threshold
	}
	da := s.plast.DecayAmount
	if decayAmount != nil {
		da = *decayAmount
	}
	cycles := float64(s.cycle)
	if cycles < 1 {
		cycles = 1
	}

	edges, err := s.store.AllEdges(ctx, labelMemory, keyID, labelMemory, keyID, relRelatesTo)
	if err != nil {
		return err
	}
	effectiveCfg := *s.plast
	effectiveCfg.DecayThreshold = th
	effectiveCfg.DecayAmount = da

	for _, e := range edges {
		current := toFloat(e.RelProps["strength"])
		if !s.plast.DecayAll && current >= th {
			continue
		}
		decay := effectiveCfg.EffectiveDecay(current, cycles)
		newStrength := current - decay
		if newStrength < s.plast.MinStrength {
			newStrength = s.plast.MinStrength
		}
		fromKey, _ := e.FromKey.(string)
		toKey, _ := e.ToKey.(string)
		if _, err := s.store.UpsertEdge(ctx, labelMemory, keyID, fromKey, labelMemory, keyID, toKey, relRelatesTo, map[string]any{"strength": newStrength}); err != nil {
			return err
		}
	}

	if s.plast.AutoPrune {
		return s.PruneDeadConnections(ctx, nil)
	}
	return nil
}

// PruneDeadConnections implements spec §4.1's prune_dead_connections:
// deletes every Memory->Memory edge at or below the prune threshold.
func (s *Service) PruneDeadConnections(ctx context.Context, minStrength *float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	threshold := s.plast.PruneThreshold
	if minStrength != nil {
		threshold = *minStrength
	}
	edges, err := s.store.AllEdges(ctx, labelMemory, keyID, labelMemory, keyID, relRelatesTo)
	if err != nil {
		return err
	}
	for _, e := range edges {
		if toFloat(e.RelProps["strength"]) > threshold {
			continue
		}
		fromKey, _ := e.FromKey.(string)
		toKey, _ := e.ToKey.(string)
		if err := s.store.DeleteEdge(ctx, labelMemory, keyID, fromKey, labelMemory, keyID, toKey, relRelatesTo); err != nil {
			return err
		}
	}
	return nil
}

// RunMaintenanceCycle implements spec §4.1's run_maintenance_cycle: one
// tick of process-local time, then a decay pass.
func (s *Service) RunMaintenanceCycle(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	s.cycle++
	s.mu.Unlock()
	return s.DecayWeakConnections(ctx, nil, nil)
}
