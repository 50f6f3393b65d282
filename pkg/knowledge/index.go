package knowledge

import (
	"context"
	"fmt"
	"sort"

	"medical-triage-be/pkg/embedding"
	"medical-triage-be/pkg/utils"
)

// Index is the similarity-search contract the retrieval coordinator
// depends on. Implementations: MemoryIndex (corpus file embedded at
// startup) and the pgvector-backed repository under internal/repository.
type Index interface {
	// Search returns up to topK chunks ranked by descending similarity
	// to the query vector. Ties keep corpus insertion order.
	Search(ctx context.Context, queryVector []float32, topK int) ([]Chunk, error)

	// Len reports the number of indexed chunks.
	Len() int
}

// MemoryIndex holds the corpus and its embeddings in process memory.
// Chunks keep their corpus insertion order; the index is immutable
// after construction so concurrent searches need no locking.
type MemoryIndex struct {
	chunks  []Chunk
	vectors [][]float32
}

// NewMemoryIndex embeds every corpus chunk with the given provider.
func NewMemoryIndex(corpus []Chunk, provider embedding.EmbeddingProvider) (*MemoryIndex, error) {
	idx := &MemoryIndex{
		chunks:  make([]Chunk, len(corpus)),
		vectors: make([][]float32, len(corpus)),
	}
	copy(idx.chunks, corpus)

	for i, c := range corpus {
		resp, err := provider.Generate(c.Text, embedding.TaskTypeDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %s: %w", c.ID, err)
		}
		idx.vectors[i] = resp.Embedding.Values
	}
	return idx, nil
}

func (idx *MemoryIndex) Len() int {
	return len(idx.chunks)
}

func (idx *MemoryIndex) Search(ctx context.Context, queryVector []float32, topK int) ([]Chunk, error) {
	if topK <= 0 {
		topK = 5
	}

	scored := make([]Chunk, len(idx.chunks))
	for i, c := range idx.chunks {
		c.Score = utils.CosineSimilarity(queryVector, idx.vectors[i])
		scored[i] = c
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}
