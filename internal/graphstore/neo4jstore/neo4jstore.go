// Package neo4jstore implements the C3 graphstore.Store contract against a
// live Neo4j (or Bolt-protocol-compatible) server via the official driver.
// Neo4j satisfies §6.3's contract directly: parameterized Cypher, typed
// node/relationship properties, named list parameters for UNWIND, and
// explicit BEGIN/COMMIT/ROLLBACK transactions.
package neo4jstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"axons/internal/apperr"
	"axons/internal/graphstore"
)

const (
	maxRetries = 3
	baseDelay  = 100 * time.Millisecond
)

// Store adapts a neo4j.DriverWithContext to graphstore.Store. It holds one
// driver; every query method and every Begin opens its own session on it,
// so successive calls do not share a session.
type Store struct {
	driver       neo4j.DriverWithContext
	database     string
	logger       *zap.Logger
	ftsAvailable bool
}

// New dials uri (e.g. "bolt://localhost:7687" or "neo4j://host:7687") and
// returns a Store. database selects the target database ("" uses the
// server default).
func New(ctx context.Context, uri, username, password, database string, logger *zap.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, apperr.NewStoreError("connect", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, apperr.NewStoreError("verify_connectivity", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{driver: driver, database: database, logger: logger}, nil
}

func (s *Store) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.database,
	})
}

// RunQuery executes a read-only query with retry on transient
// ServiceUnavailable errors, mirroring the teacher's
// optimistic-retry/backoff idiom.
func (s *Store) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)
	return s.runWithRetry(ctx, session, cypher, params)
}

// RunWrite executes an auto-commit write query.
func (s *Store) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	return s.runWithRetry(ctx, session, cypher, params)
}

func (s *Store) runWithRetry(ctx context.Context, session neo4j.SessionWithContext, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := session.Run(ctx, cypher, map[string]any(params))
		if err == nil {
			records, collectErr := result.Collect(ctx)
			if collectErr == nil {
				return toRecords(records), nil
			}
			err = collectErr
		}
		lastErr = err
		if !isRetryable(err) || attempt == maxRetries-1 {
			return nil, apperr.NewStoreError("run_query", err)
		}
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return nil, apperr.NewStoreError("run_query", lastErr)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var neo4jErr *neo4j.Neo4jError
	if errors.As(err, &neo4jErr) {
		return neo4jErr.Code == "Neo.TransientError.General.ServiceUnavailable" ||
			neo4jErr.Code == "Neo.TransientError.Transaction.DeadlockDetected"
	}
	return false
}

// RunSchemaWrite executes a schema-definition statement. Schema statements
// in this system are all written with "IF NOT EXISTS" and are therefore
// idempotent by construction (spec §4.4).
func (s *Store) RunSchemaWrite(ctx context.Context, cypher string) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	_, err := session.Run(ctx, cypher, nil)
	return err
}

// EnsureSchema brings up every node constraint and relation index declared
// in graphstore.NodeConstraints/RelationIndexes, then probes for full-text
// index support (spec §4.4, §6.2).
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range graphstore.NodeConstraints {
		if err := s.RunSchemaWrite(ctx, stmt); err != nil {
			return apperr.NewStoreError("ensure_schema.constraint", err)
		}
	}
	for _, stmt := range graphstore.RelationIndexes {
		if err := s.RunSchemaWrite(ctx, stmt); err != nil {
			return apperr.NewStoreError("ensure_schema.index", err)
		}
	}

	if err := s.RunSchemaWrite(ctx, graphstore.FullTextIndexStatement); err != nil {
		s.logger.Info("full-text indexing unavailable, falling back to CONTAINS search", zap.Error(err))
		s.ftsAvailable = false
	} else {
		s.ftsAvailable = true
	}
	return nil
}

// FTSAvailable reports the capability probed by the last EnsureSchema call.
func (s *Store) FTSAvailable() bool {
	return s.ftsAvailable
}

// Begin starts an explicit transaction bracket.
func (s *Store) Begin(ctx context.Context) (graphstore.Tx, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		session.Close(ctx)
		return nil, apperr.NewStoreError("begin", err)
	}
	return &transaction{session: session, tx: tx}, nil
}

// Close releases the driver's connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// transaction wraps a neo4j.ExplicitTransaction plus the session it was
// opened on, so Commit/Rollback can also close the session.
type transaction struct {
	session neo4j.SessionWithContext
	tx      neo4j.ExplicitTransaction
}

func (t *transaction) RunQuery(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	result, err := t.tx.Run(ctx, cypher, map[string]any(params))
	if err != nil {
		return nil, apperr.NewStoreError("tx_run", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, apperr.NewStoreError("tx_collect", err)
	}
	return toRecords(records), nil
}

func (t *transaction) RunWrite(ctx context.Context, cypher string, params graphstore.Params) ([]graphstore.Record, error) {
	return t.RunQuery(ctx, cypher, params)
}

func (t *transaction) Commit(ctx context.Context) error {
	defer t.session.Close(ctx)
	if err := t.tx.Commit(ctx); err != nil {
		return apperr.NewStoreError("commit", err)
	}
	return nil
}

func (t *transaction) Rollback(ctx context.Context) error {
	defer t.session.Close(ctx)
	if err := t.tx.Rollback(ctx); err != nil {
		return apperr.NewStoreError("rollback", err)
	}
	return nil
}

// CreateNode implements graphstore.GraphOps by writing a single labeled
// node with the given properties.
func (s *Store) CreateNode(ctx context.Context, label string, props graphstore.Params) error {
	cypher := fmt.Sprintf("CREATE (n:%s) SET n = $props", label)
	_, err := s.RunWrite(ctx, cypher, graphstore.Params{"props": map[string]any(props)})
	return err
}

func (s *Store) FindNode(ctx context.Context, label, keyField string, keyValue any) (graphstore.Record, bool, error) {
	cypher := fmt.Sprintf("MATCH (n:%s) WHERE n.%s = $key RETURN properties(n) AS props", label, keyField)
	rows, err := s.RunQuery(ctx, cypher, graphstore.Params{"key": keyValue})
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	props, _ := rows[0]["props"].(map[string]any)
	return graphstore.Record(props), true, nil
}

func (s *Store) UpdateNode(ctx context.Context, label, keyField string, keyValue any, props graphstore.Params) error {
	cypher := fmt.Sprintf("MATCH (n:%s) WHERE n.%s = $key SET n += $props", label, keyField)
	_, err := s.RunWrite(ctx, cypher, graphstore.Params{"key": keyValue, "props": map[string]any(props)})
	return err
}

func (s *Store) DeleteNode(ctx context.Context, label, keyField string, keyValue any) error {
	cypher := fmt.Sprintf("MATCH (n:%s) WHERE n.%s = $key DETACH DELETE n", label, keyField)
	_, err := s.RunWrite(ctx, cypher, graphstore.Params{"key": keyValue})
	return err
}

func (s *Store) DeleteAllNodes(ctx context.Context, label string) error {
	cypher := fmt.Sprintf("MATCH (n:%s) DETACH DELETE n", label)
	_, err := s.RunWrite(ctx, cypher, nil)
	return err
}

func (s *Store) ListNodes(ctx context.Context, label string, filter graphstore.Params) ([]graphstore.Record, error) {
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN properties(n) AS props", label)
	params := graphstore.Params{}
	if len(filter) > 0 {
		where := ""
		for k := range filter {
			if where != "" {
				where += " AND "
			}
			where += fmt.Sprintf("n.%s = $%s", k, k)
			params[k] = filter[k]
		}
		cypher = fmt.Sprintf("MATCH (n:%s) WHERE %s RETURN properties(n) AS props", label, where)
	}
	rows, err := s.RunQuery(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return propsColumn(rows, "props"), nil
}

// SearchMemories uses BM25-ranked full-text search when the full-text index
// is available, else falls back to case-insensitive substring containment
// ordered by lastAccessed DESC (spec §4.1).
func (s *Store) SearchMemories(ctx context.Context, term string, limit int) ([]graphstore.Record, error) {
	if s.FTSAvailable() {
		cypher := `CALL db.index.fulltext.queryNodes('memory_fulltext', $term) YIELD node, score
			RETURN properties(node) AS props ORDER BY score DESC LIMIT $limit`
		rows, err := s.RunQuery(ctx, cypher, graphstore.Params{"term": term, "limit": limit})
		if err == nil {
			return propsColumn(rows, "props"), nil
		}
		s.logger.Warn("full-text search failed, falling back to substring match", zap.Error(err))
	}
	cypher := `MATCH (n:Memory) WHERE toLower(n.content) CONTAINS toLower($term) OR toLower(n.summary) CONTAINS toLower($term)
		RETURN properties(n) AS props ORDER BY n.lastAccessed DESC LIMIT $limit`
	rows, err := s.RunQuery(ctx, cypher, graphstore.Params{"term": term, "limit": limit})
	if err != nil {
		return nil, err
	}
	return propsColumn(rows, "props"), nil
}

func (s *Store) UpsertEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string, props graphstore.Params) (bool, error) {
	_, found, err := s.GetEdge(ctx, fromLabel, fromKeyField, fromKey, toLabel, toKeyField, toKey, relType)
	if err != nil {
		return false, err
	}
	if found {
		cypher := fmt.Sprintf(
			"MATCH (a:%s)-[r:%s]->(b:%s) WHERE a.%s = $fromKey AND b.%s = $toKey SET r += $props",
			fromLabel, relType, toLabel, fromKeyField, toKeyField)
		_, err := s.RunWrite(ctx, cypher, graphstore.Params{"fromKey": fromKey, "toKey": toKey, "props": map[string]any(props)})
		return false, err
	}
	cypher := fmt.Sprintf(
		"MATCH (a:%s),(b:%s) WHERE a.%s = $fromKey AND b.%s = $toKey CREATE (a)-[r:%s]->(b) SET r = $props",
		fromLabel, toLabel, fromKeyField, toKeyField, relType)
	_, err = s.RunWrite(ctx, cypher, graphstore.Params{"fromKey": fromKey, "toKey": toKey, "props": map[string]any(props)})
	return err == nil, err
}

func (s *Store) GetEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) (graphstore.Record, bool, error) {
	cypher := fmt.Sprintf(
		"MATCH (a:%s)-[r:%s]->(b:%s) WHERE a.%s = $fromKey AND b.%s = $toKey RETURN properties(r) AS props",
		fromLabel, relType, toLabel, fromKeyField, toKeyField)
	rows, err := s.RunQuery(ctx, cypher, graphstore.Params{"fromKey": fromKey, "toKey": toKey})
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	props, _ := rows[0]["props"].(map[string]any)
	return graphstore.Record(props), true, nil
}

func (s *Store) DeleteEdge(ctx context.Context, fromLabel, fromKeyField string, fromKey any, toLabel, toKeyField string, toKey any, relType string) error {
	cypher := fmt.Sprintf(
		"MATCH (a:%s)-[r:%s]->(b:%s) WHERE a.%s = $fromKey AND b.%s = $toKey DELETE r",
		fromLabel, relType, toLabel, fromKeyField, toKeyField)
	_, err := s.RunWrite(ctx, cypher, graphstore.Params{"fromKey": fromKey, "toKey": toKey})
	return err
}

func (s *Store) EdgesFrom(ctx context.Context, fromLabel, fromKeyField string, fromKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	cypher := fmt.Sprintf(
		"MATCH (a:%s)-[r:%s]->(b:%s) WHERE a.%s = $fromKey RETURN properties(b) AS peer, properties(r) AS rel",
		fromLabel, relType, peerLabel, fromKeyField)
	rows, err := s.RunQuery(ctx, cypher, graphstore.Params{"fromKey": fromKey})
	if err != nil {
		return nil, err
	}
	return toEdges(rows), nil
}

func (s *Store) EdgesTo(ctx context.Context, toLabel, toKeyField string, toKey any, peerLabel, relType string) ([]graphstore.Edge, error) {
	cypher := fmt.Sprintf(
		"MATCH (a:%s)-[r:%s]->(b:%s) WHERE b.%s = $toKey RETURN properties(a) AS peer, properties(r) AS rel",
		peerLabel, relType, toLabel, toKeyField)
	rows, err := s.RunQuery(ctx, cypher, graphstore.Params{"toKey": toKey})
	if err != nil {
		return nil, err
	}
	return toEdges(rows), nil
}

func (s *Store) AllEdges(ctx context.Context, fromLabel, fromKeyField, toLabel, toKeyField, relType string) ([]graphstore.EdgePair, error) {
	cypher := fmt.Sprintf(
		"MATCH (a:%s)-[r:%s]->(b:%s) RETURN a.%s AS fromKey, b.%s AS toKey, properties(r) AS rel",
		fromLabel, relType, toLabel, fromKeyField, toKeyField)
	rows, err := s.RunQuery(ctx, cypher, nil)
	if err != nil {
		return nil, err
	}
	out := make([]graphstore.EdgePair, 0, len(rows))
	for _, row := range rows {
		rel, _ := row["rel"].(map[string]any)
		out = append(out, graphstore.EdgePair{
			FromKey:  row["fromKey"],
			ToKey:    row["toKey"],
			RelProps: graphstore.Record(rel),
		})
	}
	return out, nil
}

func propsColumn(rows []graphstore.Record, key string) []graphstore.Record {
	out := make([]graphstore.Record, 0, len(rows))
	for _, row := range rows {
		props, _ := row[key].(map[string]any)
		out = append(out, graphstore.Record(props))
	}
	return out
}

func toEdges(rows []graphstore.Record) []graphstore.Edge {
	out := make([]graphstore.Edge, 0, len(rows))
	for _, row := range rows {
		peer, _ := row["peer"].(map[string]any)
		rel, _ := row["rel"].(map[string]any)
		out = append(out, graphstore.Edge{
			PeerKey:  peer["id"],
			Peer:     graphstore.Record(peer),
			RelProps: graphstore.Record(rel),
		})
	}
	return out
}

func toRecords(records []*neo4j.Record) []graphstore.Record {
	out := make([]graphstore.Record, 0, len(records))
	for _, r := range records {
		out = append(out, graphstore.Record(r.AsMap()))
	}
	return out
}
