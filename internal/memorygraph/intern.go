package memorygraph

import (
	"context"

	"axons/internal/domain"
)

// CreateConcept looks up a Concept by name, returning the existing name if
// present, else inserts one (spec §4.1 "Create operations").
func (s *Service) CreateConcept(ctx context.Context, name, description string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	c, err := domain.NewConcept(name, description)
	if err != nil {
		return "", err
	}
	if existing, found, err := s.store.FindNode(ctx, labelConcept, keyName, c.Name); err != nil {
		return "", err
	} else if found {
		return existing[keyName].(string), nil
	}
	if err := s.store.CreateNode(ctx, labelConcept, map[string]any{"name": c.Name, "description": c.Description}); err != nil {
		return "", err
	}
	return c.Name, nil
}

// CreateKeyword looks up a Keyword by term, inserting if absent.
func (s *Service) CreateKeyword(ctx context.Context, term string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	k, err := domain.NewKeyword(term)
	if err != nil {
		return "", err
	}
	if existing, found, err := s.store.FindNode(ctx, labelKeyword, keyTerm, k.Term); err != nil {
		return "", err
	} else if found {
		return existing[keyTerm].(string), nil
	}
	if err := s.store.CreateNode(ctx, labelKeyword, map[string]any{"term": k.Term}); err != nil {
		return "", err
	}
	return k.Term, nil
}

// CreateTopic looks up a Topic by name, inserting if absent.
func (s *Service) CreateTopic(ctx context.Context, name, description string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	t, err := domain.NewTopic(name, description)
	if err != nil {
		return "", err
	}
	if existing, found, err := s.store.FindNode(ctx, labelTopic, keyName, t.Name); err != nil {
		return "", err
	} else if found {
		return existing[keyName].(string), nil
	}
	if err := s.store.CreateNode(ctx, labelTopic, map[string]any{"name": t.Name, "description": t.Description}); err != nil {
		return "", err
	}
	return t.Name, nil
}

// CreateEntity looks up an Entity by (name, type), inserting if absent.
func (s *Service) CreateEntity(ctx context.Context, name string, typ domain.EntityType, description string, aliases []string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	e, err := domain.NewEntity(name, typ, description, aliases)
	if err != nil {
		return "", err
	}
	key := entityKey(e.Name, e.Type)
	if existing, found, err := s.store.FindNode(ctx, labelEntity, keyKey, key); err != nil {
		return "", err
	} else if found {
		return existing[keyKey].(string), nil
	}
	props := map[string]any{
		"_key": key, "name": e.Name, "type": string(e.Type),
		"description": e.Description, "aliases": e.Aliases,
	}
	if err := s.store.CreateNode(ctx, labelEntity, props); err != nil {
		return "", err
	}
	return key, nil
}

// CreateSource looks up a Source by (reference, type), inserting if absent.
func (s *Service) CreateSource(ctx context.Context, typ domain.SourceType, reference, title string, reliability float64) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	src, err := domain.NewSource(typ, reference, title, reliability)
	if err != nil {
		return "", err
	}
	key := sourceKey(src.Reference, src.Type)
	if existing, found, err := s.store.FindNode(ctx, labelSource, keyKey, key); err != nil {
		return "", err
	} else if found {
		return existing[keyKey].(string), nil
	}
	props := map[string]any{
		"_key": key, "type": string(src.Type), "reference": src.Reference,
		"title": src.Title, "reliability": src.Reliability,
	}
	if err := s.store.CreateNode(ctx, labelSource, props); err != nil {
		return "", err
	}
	return key, nil
}

// CreateContext looks up a Context by (name, type), inserting if absent.
func (s *Service) CreateContext(ctx context.Context, name string, typ domain.ContextType, description, status string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	c, err := domain.NewContext(name, typ, description, status)
	if err != nil {
		return "", err
	}
	key := contextKey(c.Name, c.Type)
	if existing, found, err := s.store.FindNode(ctx, labelContext, keyKey, key); err != nil {
		return "", err
	} else if found {
		return existing[keyKey].(string), nil
	}
	props := map[string]any{
		"_key": key, "name": c.Name, "type": string(c.Type),
		"description": c.Description, "status": c.Status,
	}
	if err := s.store.CreateNode(ctx, labelContext, props); err != nil {
		return "", err
	}
	return key, nil
}

// CreatePreference looks up a Preference by (category, preference). On a
// second create for the same pair it applies the running-average merge
// (spec §4.1.P) instead of inserting a duplicate.
func (s *Service) CreatePreference(ctx context.Context, category, preference string, strength float64) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	key := preferenceKey(category, preference)
	existing, found, err := s.store.FindNode(ctx, labelPreference, keyKey, key)
	if err != nil {
		return "", err
	}
	if !found {
		p, err := domain.NewPreference(category, preference, strength)
		if err != nil {
			return "", err
		}
		props := map[string]any{
			"_key": key, "category": p.Category, "preference": p.Preference,
			"strength": p.Strength, "observations": p.Observations,
		}
		if err := s.store.CreateNode(ctx, labelPreference, props); err != nil {
			return "", err
		}
		return key, nil
	}

	observations, _ := existing["observations"].(int64)
	if observations == 0 {
		if f, ok := existing["observations"].(int); ok {
			observations = int64(f)
		}
	}
	p := &domain.Preference{
		Category:     category,
		Preference:   preference,
		Strength:     toFloat(existing["strength"]),
		Observations: int(observations),
	}
	if err := p.MergeObservation(strength); err != nil {
		return "", err
	}
	if err := s.store.UpdateNode(ctx, labelPreference, keyKey, key, map[string]any{
		"strength": p.Strength, "observations": p.Observations,
	}); err != nil {
		return "", err
	}
	return key, nil
}

// CreateDecision inserts a new Decision with a freshly generated id.
func (s *Service) CreateDecision(ctx context.Context, description, rationale, date, outcome string, reversible bool) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	d, err := domain.NewDecision(description, rationale, date, outcome, reversible)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"id": d.ID.String(), "description": d.Description, "rationale": d.Rationale,
		"date": d.Date, "outcome": d.Outcome, "reversible": d.Reversible,
	}
	if err := s.store.CreateNode(ctx, labelDecision, props); err != nil {
		return "", err
	}
	return d.ID.String(), nil
}

// CreateGoal inserts a new Goal with a freshly generated id.
func (s *Service) CreateGoal(ctx context.Context, description string, status domain.GoalStatus, priority int, targetDate string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	g, err := domain.NewGoal(description, status, priority, targetDate)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"id": g.ID.String(), "description": g.Description, "status": string(g.Status),
		"priority": g.Priority, "targetDate": g.TargetDate,
	}
	if err := s.store.CreateNode(ctx, labelGoal, props); err != nil {
		return "", err
	}
	return g.ID.String(), nil
}

// CreateQuestion inserts a new Question with a freshly generated id.
func (s *Service) CreateQuestion(ctx context.Context, text string, status domain.QuestionStatus) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	q, err := domain.NewQuestion(text, status)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"id": q.ID.String(), "text": q.Text, "status": string(q.Status), "answeredDate": q.AnsweredDate,
	}
	if err := s.store.CreateNode(ctx, labelQuestion, props); err != nil {
		return "", err
	}
	return q.ID.String(), nil
}

// CreateTemporalMarker inserts a new TemporalMarker with a freshly generated id.
func (s *Service) CreateTemporalMarker(ctx context.Context, typ domain.TemporalMarkerType, description, start, end string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	t, err := domain.NewTemporalMarker(typ, description, start, end)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"id": t.ID.String(), "type": string(t.Type), "description": t.Description,
		"start": t.Start, "end": t.End,
	}
	if err := s.store.CreateNode(ctx, labelTemporalMarker, props); err != nil {
		return "", err
	}
	return t.ID.String(), nil
}

// CreateContradiction inserts a new Contradiction with a freshly generated id.
func (s *Service) CreateContradiction(ctx context.Context, description string) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	c, err := domain.NewContradiction(description)
	if err != nil {
		return "", err
	}
	props := map[string]any{
		"id": c.ID.String(), "description": c.Description, "resolution": c.Resolution,
		"status": string(c.Status),
	}
	if err := s.store.CreateNode(ctx, labelContradiction, props); err != nil {
		return "", err
	}
	return c.ID.String(), nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
