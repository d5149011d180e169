// Package fakestore provides an in-memory graphstore.GraphOps used by
// memorygraph/plasticity/permeability tests, following the teacher's
// hand-rolled fake convention (no mocking-framework codegen). It models just
// enough of a property graph — nodes keyed by label+key-property, relations
// keyed by type+endpoints — to exercise every operation C4 issues without a
// live database.
package fakestore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"axons/internal/apperr"
	"axons/internal/graphstore"
)

type node struct {
	label string
	props map[string]any
}

type relation struct {
	relType  string
	fromIdx  int
	toIdx    int
	props    map[string]any
}

// Store is an in-memory stand-in for a property graph. It satisfies
// graphstore.GraphOps directly (no Cypher parsing); neo4jstore.Store
// satisfies the same interface by building real Cypher.
type Store struct {
	mu        sync.Mutex
	nodes     []node
	relations []relation
	closed    bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return nil, nil
}

func (s *Store) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return nil, nil
}

func (s *Store) RunSchemaWrite(ctx context.Context, cypher string) error {
	return nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

func (s *Store) FTSAvailable() bool {
	return false
}

func (s *Store) Begin(ctx context.Context) (graphstore.Tx, error) {
	s.mu.Lock()
	snapNodes := append([]node(nil), s.nodes...)
	for i := range snapNodes {
		if snapNodes[i].props != nil {
			snapNodes[i].props = cloneProps(snapNodes[i].props)
		}
	}
	snapRelations := append([]relation(nil), s.relations...)
	for i := range snapRelations {
		if snapRelations[i].props != nil {
			snapRelations[i].props = cloneProps(snapRelations[i].props)
		}
	}
	s.mu.Unlock()
	return &fakeTx{store: s, snapNodes: snapNodes, snapRelations: snapRelations}, nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called, for tests asserting a
// ClosedClient guard.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Store) CreateNode(ctx context.Context, label string, props graphstore.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, node{label: label, props: cloneProps(props)})
	return nil
}

func (s *Store) FindNode(ctx context.Context, label, keyField string, keyValue any) (graphstore.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.findNodeIdx(label, keyField, keyValue)
	if !ok {
		return nil, false, nil
	}
	return graphstore.Record(cloneProps(s.nodes[idx].props)), true, nil
}

func (s *Store) UpdateNode(ctx context.Context, label, keyField string, keyValue any, props graphstore.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.findNodeIdx(label, keyField, keyValue)
	if !ok {
		return apperr.NewNotFound(label, toString(keyValue))
	}
	for k, v := range props {
		s.nodes[idx].props[k] = v
	}
	return nil
}

func (s *Store) DeleteNode(ctx context.Context, label, keyField string, keyValue any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.findNodeIdx(label, keyField, keyValue)
	if !ok {
		return nil
	}
	kept := s.relations[:0]
	for _, r := range s.relations {
		if r.fromIdx == idx || r.toIdx == idx {
			continue
		}
		kept = append(kept, r)
	}
	s.relations = kept
	s.nodes[idx].label = "" // tombstone: indices stay stable for existing relations
	s.nodes[idx].props = nil
	return nil
}

func (s *Store) DeleteAllNodes(ctx context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dead := make(map[int]bool)
	for idx, n := range s.nodes {
		if n.label == label {
			dead[idx] = true
		}
	}
	if len(dead) == 0 {
		return nil
	}
	kept := s.relations[:0]
	for _, r := range s.relations {
		if dead[r.fromIdx] || dead[r.toIdx] {
			continue
		}
		kept = append(kept, r)
	}
	s.relations = kept
	for idx := range dead {
		s.nodes[idx].label = ""
		s.nodes[idx].props = nil
	}
	return nil
}

func (s *Store) ListNodes(ctx context.Context, label string, filter graphstore.Params) ([]graphstore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []graphstore.Record
	for _, n := range s.nodes {
		if n.label != label {
			continue
		}
		if !matches(n.props, filter) {
			continue
		}
		out = append(out, graphstore.Record(cloneProps(n.props)))
	}
	return out, nil
}

func (s *Store) SearchMemories(ctx context.Context, term string, limit int) ([]graphstore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term = strings.ToLower(term)
	var matched []node
	for _, n := range s.nodes {
		if n.label != "Memory" {
			continue
		}
		content, _ := n.props["content"].(string)
		summary, _ := n.props["summary"].(string)
		if strings.Contains(strings.ToLower(content), term) || strings.Contains(strings.ToLower(summary), term) {
			matched = append(matched, n)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ti, _ := matched[i].props["lastAccessed"].(time.Time)
		tj, _ := matched[j].props["lastAccessed"].(time.Time)
		return ti.After(tj)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]graphstore.Record, 0, len(matched))
	for _, n := range matched {
		out = append(out, graphstore.Record(cloneProps(n.props)))
	}
	return out, nil
}

func (s *Store) UpsertEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string, props graphstore.Params) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromIdx, ok := s.findNodeIdx(fromLabel, fromKeyField, fromKey)
	if !ok {
		return false, apperr.NewNotFound(fromLabel, toString(fromKey))
	}
	toIdx, ok := s.findNodeIdx(toLabel, toKeyField, toKey)
	if !ok {
		return false, apperr.NewNotFound(toLabel, toString(toKey))
	}
	for i, r := range s.relations {
		if r.relType == relType && r.fromIdx == fromIdx && r.toIdx == toIdx {
			for k, v := range props {
				s.relations[i].props[k] = v
			}
			return false, nil
		}
	}
	s.relations = append(s.relations, relation{relType: relType, fromIdx: fromIdx, toIdx: toIdx, props: cloneProps(props)})
	return true, nil
}

func (s *Store) GetEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) (graphstore.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromIdx, ok := s.findNodeIdx(fromLabel, fromKeyField, fromKey)
	if !ok {
		return nil, false, nil
	}
	toIdx, ok := s.findNodeIdx(toLabel, toKeyField, toKey)
	if !ok {
		return nil, false, nil
	}
	for _, r := range s.relations {
		if r.relType == relType && r.fromIdx == fromIdx && r.toIdx == toIdx {
			return graphstore.Record(cloneProps(r.props)), true, nil
		}
	}
	return nil, false, nil
}

func (s *Store) DeleteEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromIdx, ok := s.findNodeIdx(fromLabel, fromKeyField, fromKey)
	if !ok {
		return nil
	}
	toIdx, ok := s.findNodeIdx(toLabel, toKeyField, toKey)
	if !ok {
		return nil
	}
	kept := s.relations[:0]
	for _, r := range s.relations {
		if r.relType == relType && r.fromIdx == fromIdx && r.toIdx == toIdx {
			continue
		}
		kept = append(kept, r)
	}
	s.relations = kept
	return nil
}

func (s *Store) EdgesFrom(ctx context.Context, fromLabel, fromKeyField string, fromKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromIdx, ok := s.findNodeIdx(fromLabel, fromKeyField, fromKey)
	if !ok {
		return nil, nil
	}
	var out []graphstore.Edge
	for _, r := range s.relations {
		if r.fromIdx != fromIdx || r.relType != relType {
			continue
		}
		peer := s.nodes[r.toIdx]
		if peerLabel != "" && peer.label != peerLabel {
			continue
		}
		out = append(out, graphstore.Edge{
			PeerKey:  peer.props["id"],
			Peer:     graphstore.Record(cloneProps(peer.props)),
			RelProps: graphstore.Record(cloneProps(r.props)),
		})
	}
	return out, nil
}

func (s *Store) EdgesTo(ctx context.Context, toLabel, toKeyField string, toKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	toIdx, ok := s.findNodeIdx(toLabel, toKeyField, toKey)
	if !ok {
		return nil, nil
	}
	var out []graphstore.Edge
	for _, r := range s.relations {
		if r.toIdx != toIdx || r.relType != relType {
			continue
		}
		peer := s.nodes[r.fromIdx]
		if peerLabel != "" && peer.label != peerLabel {
			continue
		}
		out = append(out, graphstore.Edge{
			PeerKey:  peer.props["id"],
			Peer:     graphstore.Record(cloneProps(peer.props)),
			RelProps: graphstore.Record(cloneProps(r.props)),
		})
	}
	return out, nil
}

func (s *Store) AllEdges(ctx context.Context, fromLabel, fromKeyField, toLabel, toKeyField, relType string) ([]graphstore.EdgePair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []graphstore.EdgePair
	for _, r := range s.relations {
		if r.relType != relType {
			continue
		}
		from := s.nodes[r.fromIdx]
		to := s.nodes[r.toIdx]
		if from.label != fromLabel || to.label != toLabel {
			continue
		}
		out = append(out, graphstore.EdgePair{
			FromKey:  from.props[fromKeyField],
			ToKey:    to.props[toKeyField],
			RelProps: graphstore.Record(cloneProps(r.props)),
		})
	}
	return out, nil
}

// NodeCount returns the number of live (non-tombstoned) nodes, for test
// assertions.
func (s *Store) NodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, nd := range s.nodes {
		if nd.label != "" {
			n++
		}
	}
	return n
}

// RelationCount returns the number of live relations, for test assertions.
func (s *Store) RelationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.relations)
}

func (s *Store) findNodeIdx(label, keyField string, keyValue any) (int, bool) {
	for i, n := range s.nodes {
		if n.label != label {
			continue
		}
		if n.props[keyField] == keyValue {
			return i, true
		}
	}
	return 0, false
}

func matches(props map[string]any, filter graphstore.Params) bool {
	for k, v := range filter {
		if props[k] != v {
			return false
		}
	}
	return true
}

func cloneProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// fakeTx is a best-effort explicit transaction bracket: writes land on the
// shared store immediately; Rollback restores the snapshot taken at Begin.
type fakeTx struct {
	store         *Store
	snapNodes     []node
	snapRelations []relation
}

func (t *fakeTx) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return nil, nil
}

func (t *fakeTx) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return nil, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.nodes = t.snapNodes
	t.store.relations = t.snapRelations
	return nil
}
