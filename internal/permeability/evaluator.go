// Package permeability implements C2: a pure decision procedure over
// memory-level and compartment-level flow policies (spec §4.2). It takes
// explicit {compartments, memory_permeability} inputs rather than reaching
// into the graph store, so it is directly unit-testable (spec §9).
package permeability

import "axons/internal/domain"

// MemoryFlow bundles the inputs CanDataFlow/CanFormConnection need about one
// side of a candidate interaction.
type MemoryFlow struct {
	Permeability domain.Permeability
	Compartments []domain.Membership
}

// CanFormConnection implements §4.2.1: may an organic edge form between a
// and b? Fail-safe: any restrictive compartment on either side blocks
// formation, except the co-location exception (identical non-empty
// compartment sets always permit formation).
func CanFormConnection(a, b MemoryFlow) bool {
	if len(a.Compartments) == 0 && len(b.Compartments) == 0 {
		return true
	}

	if len(a.Compartments) > 0 && sameSet(a.Compartments, b.Compartments) {
		return true
	}

	for _, m := range union(a.Compartments, b.Compartments) {
		if !m.AllowExternalConnections {
			return false
		}
	}
	return true
}

// CanDataFlow implements §4.2.2: may data flow from `from` to `to`? Every
// step must pass; the first failing step ends the check with false.
func CanDataFlow(from, to MemoryFlow, connectionPermeability *domain.Permeability) bool {
	if !from.Permeability.AllowsOutward() {
		return false
	}
	if !to.Permeability.AllowsInward() {
		return false
	}
	for _, m := range from.Compartments {
		if !m.Permeability.AllowsOutward() {
			return false
		}
	}
	for _, m := range to.Compartments {
		if !m.Permeability.AllowsInward() {
			return false
		}
	}
	if connectionPermeability != nil && !connectionPermeability.AllowsInward() {
		return false
	}
	return true
}

// BatchFilter implements §4.2.3: given a requesting memory R and candidates
// {C_i} (flow is C_i -> R), returns the subset of candidate indices that
// pass. Lookups for R are amortized: its inward gate is evaluated once, and
// the per-candidate work is the only thing scaling with len(candidates).
func BatchFilter(requester MemoryFlow, candidates []MemoryFlow) []int {
	if !requester.Permeability.AllowsInward() {
		return nil
	}
	for _, m := range requester.Compartments {
		if !m.Permeability.AllowsInward() {
			return nil
		}
	}

	var kept []int
	for i, c := range candidates {
		if !c.Permeability.AllowsOutward() {
			continue
		}
		blocked := false
		for _, m := range c.Compartments {
			if !m.Permeability.AllowsOutward() {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		kept = append(kept, i)
	}
	return kept
}

func sameSet(a, b []domain.Membership) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[domain.CompartmentID]bool, len(a))
	for _, m := range a {
		seen[m.CompartmentID] = true
	}
	for _, m := range b {
		if !seen[m.CompartmentID] {
			return false
		}
	}
	return true
}

func union(a, b []domain.Membership) []domain.Membership {
	seen := make(map[domain.CompartmentID]bool, len(a)+len(b))
	var out []domain.Membership
	for _, m := range append(append([]domain.Membership{}, a...), b...) {
		if seen[m.CompartmentID] {
			continue
		}
		seen[m.CompartmentID] = true
		out = append(out, m)
	}
	return out
}
