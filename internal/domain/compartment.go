package domain

import "axons/internal/apperr"

// Compartment is interned by Name (spec §3.1). AllowExternalConnections
// governs §4.2.1's fail-safe organic-edge-formation rule.
type Compartment struct {
	ID                      CompartmentID
	Name                    string
	Permeability            Permeability
	AllowExternalConnections bool
	Description             string
}

func NewCompartment(name string, permeability Permeability, allowExternal bool, description string) (*Compartment, error) {
	if !NonEmpty(name) {
		return nil, apperr.NewMissingRequired("name")
	}
	if permeability == "" {
		permeability = Open
	}
	if !permeability.Valid() {
		return nil, apperr.NewOutOfRange("permeability", 0, 0, 0)
	}
	return &Compartment{
		ID:                       CompartmentID(name),
		Name:                     name,
		Permeability:             permeability,
		AllowExternalConnections: allowExternal,
		Description:              description,
	}, nil
}

// Membership is a {compartment, allowExternalConnections} pair as consumed
// by the permeability evaluator (C2) — see spec §4.2.1 step 1.
type Membership struct {
	CompartmentID            CompartmentID
	Permeability             Permeability
	AllowExternalConnections bool
}
