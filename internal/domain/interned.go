package domain

import "axons/internal/apperr"

// Concept is interned by Name (spec §3.1).
type Concept struct {
	Name        string
	Description string
}

func NewConcept(name, description string) (*Concept, error) {
	if !NonEmpty(name) {
		return nil, apperr.NewMissingRequired("name")
	}
	return &Concept{Name: name, Description: description}, nil
}

// Keyword is interned by Term.
type Keyword struct {
	Term string
}

func NewKeyword(term string) (*Keyword, error) {
	if !NonEmpty(term) {
		return nil, apperr.NewMissingRequired("term")
	}
	return &Keyword{Term: term}, nil
}

// Topic is interned by Name.
type Topic struct {
	Name        string
	Description string
}

func NewTopic(name, description string) (*Topic, error) {
	if !NonEmpty(name) {
		return nil, apperr.NewMissingRequired("name")
	}
	return &Topic{Name: name, Description: description}, nil
}

// Entity is interned by (Name, Type).
type Entity struct {
	Name        string
	Type        EntityType
	Description string
	Aliases     []string
}

func NewEntity(name string, typ EntityType, description string, aliases []string) (*Entity, error) {
	if !NonEmpty(name) {
		return nil, apperr.NewMissingRequired("name")
	}
	switch typ {
	case EntityPerson, EntityOrganization, EntityProject, EntityTool, EntityTechnology, EntityPlace:
	default:
		return nil, apperr.NewMissingRequired("type")
	}
	return &Entity{Name: name, Type: typ, Description: description, Aliases: aliases}, nil
}

// Source is interned by (Reference, Type).
type Source struct {
	Type        SourceType
	Reference   string
	Title       string
	Reliability float64
}

func NewSource(typ SourceType, reference, title string, reliability float64) (*Source, error) {
	if !NonEmpty(reference) {
		return nil, apperr.NewMissingRequired("reference")
	}
	if !InRange(reliability, 0, 1) {
		return nil, apperr.NewOutOfRange("reliability", reliability, 0, 1)
	}
	return &Source{Type: typ, Reference: reference, Title: title, Reliability: reliability}, nil
}

// Decision is not interned; it gets an opaque id.
type Decision struct {
	ID          DecisionID
	Description string
	Rationale   string
	Date        string
	Outcome     string
	Reversible  bool
}

func NewDecision(description, rationale, date, outcome string, reversible bool) (*Decision, error) {
	if !NonEmpty(description) {
		return nil, apperr.NewMissingRequired("description")
	}
	return &Decision{
		ID: NewDecisionID(), Description: description, Rationale: rationale,
		Date: date, Outcome: outcome, Reversible: reversible,
	}, nil
}

// Goal is not interned; it gets an opaque id.
type Goal struct {
	ID          GoalID
	Description string
	Status      GoalStatus
	Priority    int
	TargetDate  string
}

func NewGoal(description string, status GoalStatus, priority int, targetDate string) (*Goal, error) {
	if !NonEmpty(description) {
		return nil, apperr.NewMissingRequired("description")
	}
	if status == "" {
		status = GoalActive
	}
	return &Goal{ID: NewGoalID(), Description: description, Status: status, Priority: priority, TargetDate: targetDate}, nil
}

// Question is not interned; it gets an opaque id.
type Question struct {
	ID           QuestionID
	Text         string
	Status       QuestionStatus
	AnsweredDate string
}

func NewQuestion(text string, status QuestionStatus) (*Question, error) {
	if !NonEmpty(text) {
		return nil, apperr.NewMissingRequired("text")
	}
	if status == "" {
		status = QuestionOpen
	}
	return &Question{ID: NewQuestionID(), Text: text, Status: status}, nil
}

// Context is interned by (Name, Type).
type Context struct {
	Name        string
	Type        ContextType
	Description string
	Status      string
}

func NewContext(name string, typ ContextType, description, status string) (*Context, error) {
	if !NonEmpty(name) {
		return nil, apperr.NewMissingRequired("name")
	}
	return &Context{Name: name, Type: typ, Description: description, Status: status}, nil
}

// Preference is interned by (Category, Preference) but, uniquely among
// interned entities, its second create mutates Strength via a running
// average and increments Observations (spec §4.1.P, invariant P2 exception).
type Preference struct {
	Category     string
	Preference   string
	Strength     float64
	Observations int
}

func NewPreference(category, preference string, strength float64) (*Preference, error) {
	if !NonEmpty(category) {
		return nil, apperr.NewMissingRequired("category")
	}
	if !NonEmpty(preference) {
		return nil, apperr.NewMissingRequired("preference")
	}
	if !InRange(strength, -1, 1) {
		return nil, apperr.NewOutOfRange("strength", strength, -1, 1)
	}
	return &Preference{Category: category, Preference: preference, Strength: strength, Observations: 1}, nil
}

// MergeObservation applies the running-average update described in §4.1.P:
// strength ← (strength·observations + new_strength) / (observations + 1);
// observations ← observations + 1.
func (p *Preference) MergeObservation(newStrength float64) error {
	if !InRange(newStrength, -1, 1) {
		return apperr.NewOutOfRange("strength", newStrength, -1, 1)
	}
	p.Strength = (p.Strength*float64(p.Observations) + newStrength) / float64(p.Observations+1)
	p.Observations++
	return nil
}

// TemporalMarker is not interned; it gets an opaque id.
type TemporalMarker struct {
	ID          TemporalMarkerID
	Type        TemporalMarkerType
	Description string
	Start       string
	End         string
}

func NewTemporalMarker(typ TemporalMarkerType, description, start, end string) (*TemporalMarker, error) {
	switch typ {
	case TemporalPoint, TemporalPeriod, TemporalSequence:
	default:
		return nil, apperr.NewMissingRequired("type")
	}
	return &TemporalMarker{ID: NewTemporalMarkerID(), Type: typ, Description: description, Start: start, End: end}, nil
}

// Contradiction is not interned; it gets an opaque id.
type Contradiction struct {
	ID          ContradictionID
	Description string
	Resolution  string
	Status      ContradictionStatus
}

func NewContradiction(description string) (*Contradiction, error) {
	if !NonEmpty(description) {
		return nil, apperr.NewMissingRequired("description")
	}
	return &Contradiction{ID: NewContradictionID(), Description: description, Status: ContradictionUnresolved}, nil
}
