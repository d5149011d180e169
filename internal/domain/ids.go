// Package domain holds the entity, value-object, and relation-property types
// of the memory graph's data model (spec §3).
package domain

import "github.com/google/uuid"

// MemoryID identifies a Memory node.
type MemoryID string

// NewMemoryID mints a new random MemoryID.
func NewMemoryID() MemoryID { return MemoryID(uuid.New().String()) }

func (id MemoryID) String() string { return string(id) }

// DecisionID identifies a Decision node.
type DecisionID string

func NewDecisionID() DecisionID { return DecisionID(uuid.New().String()) }
func (id DecisionID) String() string { return string(id) }

// GoalID identifies a Goal node.
type GoalID string

func NewGoalID() GoalID       { return GoalID(uuid.New().String()) }
func (id GoalID) String() string { return string(id) }

// QuestionID identifies a Question node.
type QuestionID string

func NewQuestionID() QuestionID { return QuestionID(uuid.New().String()) }
func (id QuestionID) String() string { return string(id) }

// TemporalMarkerID identifies a TemporalMarker node.
type TemporalMarkerID string

func NewTemporalMarkerID() TemporalMarkerID { return TemporalMarkerID(uuid.New().String()) }
func (id TemporalMarkerID) String() string  { return string(id) }

// ContradictionID identifies a Contradiction node.
type ContradictionID string

func NewContradictionID() ContradictionID { return ContradictionID(uuid.New().String()) }
func (id ContradictionID) String() string { return string(id) }

// CompartmentID identifies a Compartment node. Compartments are interned by
// name (§3.1), so a CompartmentID is just that name, not a generated uuid.
type CompartmentID string

func (id CompartmentID) String() string { return string(id) }
