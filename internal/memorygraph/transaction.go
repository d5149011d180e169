package memorygraph

import (
	"context"

	"axons/internal/domain"
	"axons/internal/graphstore"
)

// Transaction is the handle returned by BeginTransaction. It wraps the
// underlying graphstore.Tx; Commit/Rollback delegate to it directly. Writes
// issued through Service methods during the transaction's lifetime go
// through Service's own GraphOps handle, not through this Tx — for
// fakestore that is still correct (Begin snapshots the whole store, and
// Rollback restores that snapshot regardless of which handle issued the
// writes); neo4jstore's GraphOps methods each open their own session, so a
// real Neo4j-backed Service does not get cross-call atomicity from this
// wrapper alone (see DESIGN.md).
type Transaction struct {
	tx graphstore.Tx
}

// BeginTransaction implements begin_transaction.
func (s *Service) BeginTransaction(ctx context.Context) (*Transaction, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx}, nil
}

// Commit implements commit.
func (t *Transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback implements rollback.
func (t *Transaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// QuickStoreMemory implements the composite quick_store_memory helper
// (spec §4.1): create_memory plus linkage to concepts/keywords/topic, rolled
// back on any error.
func (s *Service) QuickStoreMemory(ctx context.Context, content, summary string, confidence float64, perm domain.Permeability, compartmentID *string, concepts []string, keywords []string, topic *string) (id string, err error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	tx, err := s.BeginTransaction(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	id, err = s.CreateMemory(ctx, content, summary, confidence, perm, compartmentID)
	if err != nil {
		return "", err
	}
	for _, concept := range concepts {
		if _, err = s.CreateConcept(ctx, concept, ""); err != nil {
			return "", err
		}
		if err = s.LinkConcept(ctx, id, concept, 1.0); err != nil {
			return "", err
		}
	}
	for _, kw := range keywords {
		if _, err = s.CreateKeyword(ctx, kw); err != nil {
			return "", err
		}
		if err = s.LinkKeyword(ctx, id, kw); err != nil {
			return "", err
		}
	}
	if topic != nil {
		if _, err = s.CreateTopic(ctx, *topic, ""); err != nil {
			return "", err
		}
		if err = s.LinkTopic(ctx, id, *topic, true); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}
