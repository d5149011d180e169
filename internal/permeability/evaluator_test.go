package permeability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"axons/internal/domain"
)

func flow(perm domain.Permeability, memberships ...domain.Membership) MemoryFlow {
	return MemoryFlow{Permeability: perm, Compartments: memberships}
}

func membership(id string, perm domain.Permeability, allowExternal bool) domain.Membership {
	return domain.Membership{CompartmentID: domain.CompartmentID(id), Permeability: perm, AllowExternalConnections: allowExternal}
}

func TestCanFormConnection_NoCompartmentsAlwaysAllowed(t *testing.T) {
	a := flow(domain.Open)
	b := flow(domain.Open)
	assert.True(t, CanFormConnection(a, b))
}

func TestCanFormConnection_CoLocationException(t *testing.T) {
	m := membership("work", domain.Closed, false)
	a := flow(domain.Open, m)
	b := flow(domain.Open, m)
	assert.True(t, CanFormConnection(a, b), "identical non-empty compartment sets should permit formation even when closed")
}

func TestCanFormConnection_BlockedWithoutExternalConnections(t *testing.T) {
	a := flow(domain.Open, membership("work", domain.Closed, false))
	b := flow(domain.Open)
	assert.False(t, CanFormConnection(a, b))
}

func TestCanFormConnection_AllowedWhenExternalConnectionsPermitted(t *testing.T) {
	a := flow(domain.Open, membership("work", domain.Closed, true))
	b := flow(domain.Open)
	assert.True(t, CanFormConnection(a, b))
}

func TestCanDataFlow_RequiresOutwardThenInward(t *testing.T) {
	assert.True(t, CanDataFlow(flow(domain.Open), flow(domain.Open), nil))
	assert.False(t, CanDataFlow(flow(domain.Closed), flow(domain.Open), nil), "source must allow outward")
	assert.False(t, CanDataFlow(flow(domain.Open), flow(domain.Closed), nil), "destination must allow inward")
}

func TestCanDataFlow_OsmoticDirectionsAreOneWay(t *testing.T) {
	assert.True(t, CanDataFlow(flow(domain.OsmoticOutward), flow(domain.OsmoticInward), nil))
	assert.False(t, CanDataFlow(flow(domain.OsmoticInward), flow(domain.Open), nil), "OSMOTIC_INWARD does not allow outward")
	assert.False(t, CanDataFlow(flow(domain.Open), flow(domain.OsmoticOutward), nil), "OSMOTIC_OUTWARD does not allow inward")
}

func TestCanDataFlow_CompartmentGatesBothSides(t *testing.T) {
	from := flow(domain.Open, membership("work", domain.Closed, true))
	to := flow(domain.Open)
	assert.False(t, CanDataFlow(from, to, nil), "a closed source-side compartment should block outward flow")

	from2 := flow(domain.Open)
	to2 := flow(domain.Open, membership("personal", domain.Closed, true))
	assert.False(t, CanDataFlow(from2, to2, nil), "a closed destination-side compartment should block inward flow")
}

func TestCanDataFlow_ConnectionPermeabilityCanBlock(t *testing.T) {
	closed := domain.Closed
	assert.False(t, CanDataFlow(flow(domain.Open), flow(domain.Open), &closed))
}

func TestCanDataFlow_FailSafeOnAmbiguity(t *testing.T) {
	// An empty string is not a valid Permeability value; AllowsOutward/
	// AllowsInward both default to false for anything but OPEN/OSMOTIC_*,
	// so malformed state fails closed rather than open.
	assert.False(t, CanDataFlow(flow(domain.Permeability("")), flow(domain.Open), nil))
}

func TestBatchFilter_RequesterGate(t *testing.T) {
	requester := flow(domain.Closed)
	candidates := []MemoryFlow{flow(domain.Open), flow(domain.Open)}
	assert.Nil(t, BatchFilter(requester, candidates), "a requester that cannot receive inward should keep nothing")
}

func TestBatchFilter_KeepsOnlyOutwardCandidates(t *testing.T) {
	requester := flow(domain.Open)
	candidates := []MemoryFlow{
		flow(domain.Open),
		flow(domain.Closed),
		flow(domain.OsmoticOutward),
		flow(domain.OsmoticInward),
	}
	kept := BatchFilter(requester, candidates)
	assert.Equal(t, []int{0, 2}, kept)
}

func TestBatchFilter_RequesterCompartmentGate(t *testing.T) {
	requester := flow(domain.Open, membership("work", domain.Closed, true))
	candidates := []MemoryFlow{flow(domain.Open)}
	assert.Nil(t, BatchFilter(requester, candidates))
}
