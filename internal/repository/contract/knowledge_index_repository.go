package contract

import (
	"context"

	"medical-triage-be/pkg/knowledge"
)

// KnowledgeIndexRepository is the persistent corpus index. It satisfies
// knowledge.Index for the retrieval path and adds the rebuild
// operations used by the indexer.
type KnowledgeIndexRepository interface {
	knowledge.Index

	// Rebuild replaces the stored corpus wholesale. The index is a
	// rebuildable cache of the corpus file, not a system of record.
	Rebuild(ctx context.Context, chunks []knowledge.Chunk, embeddings [][]float32) error
	Count(ctx context.Context) (int64, error)
}
