// Package graphstore implements C3: a thin transactional wrapper around the
// underlying property-graph engine (spec §4.4, §6.3). The Store interface is
// the store-adapter contract; any engine offering parameterized Cypher-style
// queries, typed node/relation tables, and explicit BEGIN/COMMIT/ROLLBACK can
// satisfy it. Errors from the underlying engine propagate upward; neo4jstore
// wraps most of them in apperr.StoreError before returning them (its
// RunSchemaWrite returns the driver error as is).
package graphstore

import "context"

// Record is one row returned by a query, keyed by the Cypher RETURN alias.
type Record map[string]any

// Params binds named parameters into a Cypher query, including list
// parameters for UNWIND.
type Params map[string]any

// Querier is the read/write surface shared by Store and Tx.
type Querier interface {
	// RunQuery executes a read query and returns its result rows.
	RunQuery(ctx context.Context, cypher string, params Params) ([]Record, error)
	// RunWrite executes a write query (CREATE/MERGE/SET/DELETE) and returns
	// any RETURNed rows.
	RunWrite(ctx context.Context, cypher string, params Params) ([]Record, error)
}

// Tx is an explicit transaction bracket around a sequence of writes (spec
// §4.1 "Transactions", §5 "implementations SHOULD execute read and write
// within the same transaction to avoid lost updates").
type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the full C3 contract: schema bring-up, ad hoc queries/writes
// outside any caller-managed transaction, and transaction brackets.
type Store interface {
	Querier

	// RunSchemaWrite executes a schema-definition statement (constraint or
	// index declaration). Declarations are idempotent: re-running schema
	// bring-up is a no-op.
	RunSchemaWrite(ctx context.Context, cypher string) error

	// EnsureSchema brings up every node/relation table declared in §6.2 and
	// probes for full-text indexing support, idempotently.
	EnsureSchema(ctx context.Context) error

	// FTSAvailable reports whether the engine offered full-text indexing at
	// the last EnsureSchema call. search_memories uses this to choose
	// between BM25-ranked FTS and CONTAINS fallback.
	FTSAvailable() bool

	// Begin starts an explicit transaction.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the Store's connection to the engine (for neo4jstore,
	// the driver's connection pool).
	Close(ctx context.Context) error
}
