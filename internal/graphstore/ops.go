package graphstore

import "context"

// Edge is one relation returned by EdgesFrom/EdgesTo: the peer node's "id"
// property (nil for peers without one, such as Compartment), its full
// property record, and the relation's own properties.
type Edge struct {
	PeerKey   any
	Peer      Record
	RelProps  Record
}

// GraphOps is the typed port that internal/memorygraph (C4) programs
// against, sitting above the raw Cypher/Tx contract in Store (§4.4, §6.3).
// It exists for the same reason `internal/repository/ddb/repository.go`
// exposes a typed Repository interface instead of leaving every call site
// to hand-write SQL/Cypher: C4's operations are expressed once, here, and
// each backend (neo4jstore, fakestore) supplies its own means of executing
// them — real parameterized Cypher for Neo4j, direct slice operations for
// the in-memory test double.
type GraphOps interface {
	Store

	// CreateNode inserts a new node labeled `label` with the given
	// properties. Used for non-interned entities (Memory, Decision, Goal,
	// Question, TemporalMarker, Contradiction) whose identity is an opaque
	// id already present in props.
	CreateNode(ctx context.Context, label string, props Params) error

	// FindNode looks up the (at most one) node labeled `label` whose
	// keyField property equals keyValue.
	FindNode(ctx context.Context, label, keyField string, keyValue any) (Record, bool, error)

	// UpdateNode merges props into the node identified by keyField=keyValue.
	UpdateNode(ctx context.Context, label, keyField string, keyValue any, props Params) error

	// DeleteNode removes the node identified by keyField=keyValue along
	// with every relation touching it.
	DeleteNode(ctx context.Context, label, keyField string, keyValue any) error

	// ListNodes returns every node labeled `label` whose properties match
	// filter exactly on every given key (nil/empty filter returns all).
	ListNodes(ctx context.Context, label string, filter Params) ([]Record, error)

	// DeleteAllNodes removes every node labeled `label` along with every
	// relation touching them. Used by delete_all (spec §3.4) to wipe the
	// graph one node table at a time.
	DeleteAllNodes(ctx context.Context, label string) error

	// SearchMemories implements the search_memories fallback chain (spec
	// §4.1): full-text BM25 ranking when the store offers it, else
	// substring containment on content OR summary ordered by
	// lastAccessed DESC.
	SearchMemories(ctx context.Context, term string, limit int) ([]Record, error)

	// UpsertEdge idempotently creates relType from (fromLabel,fromKey) to
	// (toLabel,toKey), or merges props into the edge if it already exists.
	// created reports whether a new edge was inserted.
	UpsertEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string, props Params) (created bool, err error)

	// GetEdge returns the named edge's properties, if present.
	GetEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) (Record, bool, error)

	// DeleteEdge removes the named edge if present; a no-op if absent.
	DeleteEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) error

	// EdgesFrom lists every relType edge (and its peer) originating at
	// (fromLabel,fromKey).
	EdgesFrom(ctx context.Context, fromLabel, fromKeyField string, fromKey any, peerLabel, relType string) ([]Edge, error)

	// EdgesTo lists every relType edge (and its peer) terminating at
	// (toLabel,toKey).
	EdgesTo(ctx context.Context, toLabel, toKeyField string, toKey any, peerLabel, relType string) ([]Edge, error)

	// AllEdges lists every relType edge in the graph between nodes labeled
	// fromLabel and toLabel, for whole-graph maintenance passes (decay,
	// prune, connection statistics).
	AllEdges(ctx context.Context, fromLabel, fromKeyField, toLabel, toKeyField, relType string) ([]EdgePair, error)
}

// EdgePair is one relType edge returned by AllEdges, carrying both
// endpoints' identifying keys and the edge's own properties.
type EdgePair struct {
	FromKey  any
	ToKey    any
	RelProps Record
}
