package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/embedding"
	"medical-triage-be/pkg/knowledge"
)

// Provenance records where a retrieval result came from.
type Provenance string

const (
	ProvenanceLocal Provenance = "local"
	ProvenanceLive  Provenance = "live"
	ProvenanceMixed Provenance = "mixed"
)

// Result is the ordered outcome of one retrieval pass.
type Result struct {
	Chunks     []knowledge.Chunk
	Provenance Provenance
	Success    bool
}

// Config carries the retrieval thresholds, loaded once at startup.
type Config struct {
	TopK               int
	MinSimilarity      float64
	LiveFetchThreshold float64
}

// LiveFetcher is the live knowledge adapter contract. A failed fetch
// yields an empty slice, never an error the coordinator must handle.
type LiveFetcher interface {
	FetchMedicalInfo(ctx context.Context, symptom, sessionID string) []knowledge.Chunk
}

// Coordinator decides index-versus-live, merges results, and builds the
// grounding context blob for the reasoning step.
//
// Policy (deliberate, documented): local-first, live-on-low-confidence.
// The index is always consulted when non-empty; live sources are tried
// only when the best local score falls below LiveFetchThreshold. When
// live returns chunks they are merged with local chunks that clear
// MinSimilarity; when live returns nothing the local result stands even
// below threshold, so a non-empty corpus always yields at least one chunk.
type Coordinator struct {
	index    knowledge.Index
	embedder embedding.EmbeddingProvider
	fetcher  LiveFetcher
	cfg      Config
	logger   logger.ILogger
}

func NewCoordinator(
	index knowledge.Index,
	embedder embedding.EmbeddingProvider,
	fetcher LiveFetcher,
	cfg Config,
	log logger.ILogger,
) *Coordinator {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return &Coordinator{
		index:    index,
		embedder: embedder,
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   log,
	}
}

// Retrieve runs one retrieval pass for a symptom query.
func (c *Coordinator) Retrieve(ctx context.Context, sessionID, query string, topK int) Result {
	if topK <= 0 {
		topK = c.cfg.TopK
	}

	local, err := c.searchLocal(ctx, query, topK)
	if err != nil {
		c.logger.Warn("retrieval", "local index search failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	bestScore := 0.0
	if len(local) > 0 {
		bestScore = local[0].Score
	}

	if len(local) > 0 && bestScore >= c.cfg.LiveFetchThreshold {
		c.logger.Info("retrieval", "local match sufficient", map[string]interface{}{
			"session_id": sessionID,
			"best_score": bestScore,
			"chunks":     len(local),
		})
		return Result{Chunks: local, Provenance: ProvenanceLocal, Success: true}
	}

	live := c.fetchLive(ctx, sessionID, query)

	switch {
	case len(live) > 0 && len(local) > 0:
		merged, prov := mergeChunks(live, local, c.cfg.MinSimilarity, topK)
		return Result{Chunks: merged, Provenance: prov, Success: true}

	case len(live) > 0:
		if len(live) > topK {
			live = live[:topK]
		}
		return Result{Chunks: live, Provenance: ProvenanceLive, Success: true}

	case len(local) > 0:
		// Live failed: the local result stands even below threshold.
		c.logger.Info("retrieval", "live fetch empty, keeping local result", map[string]interface{}{
			"session_id": sessionID,
			"best_score": bestScore,
		})
		return Result{Chunks: local, Provenance: ProvenanceLocal, Success: true}

	default:
		c.logger.Warn("retrieval", "no grounding available", map[string]interface{}{
			"session_id": sessionID,
		})
		return Result{Chunks: nil, Provenance: ProvenanceLocal, Success: false}
	}
}

func (c *Coordinator) searchLocal(ctx context.Context, query string, topK int) ([]knowledge.Chunk, error) {
	if c.index == nil || c.index.Len() == 0 {
		return nil, nil
	}

	resp, err := c.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return c.index.Search(ctx, resp.Embedding.Values, topK)
}

func (c *Coordinator) fetchLive(ctx context.Context, sessionID, query string) []knowledge.Chunk {
	if c.fetcher == nil {
		return nil
	}
	symptom := ExtractPrimarySymptom(query)
	return c.fetcher.FetchMedicalInfo(ctx, symptom, sessionID)
}

// mergeChunks combines live chunks with local chunks above the minimum
// similarity, re-sorted by score and capped at topK. The provenance
// describes the chunks that survive the cap, not the inputs: a merge
// where the cap drops every live chunk reports a local result.
func mergeChunks(live, local []knowledge.Chunk, minSimilarity float64, topK int) ([]knowledge.Chunk, Provenance) {
	type origin struct {
		chunk knowledge.Chunk
		live  bool
	}

	merged := make([]origin, 0, len(live)+len(local))
	for _, c := range live {
		merged = append(merged, origin{chunk: c, live: true})
	}
	for _, c := range local {
		if c.Score >= minSimilarity {
			merged = append(merged, origin{chunk: c})
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].chunk.Score > merged[b].chunk.Score
	})

	if len(merged) > topK {
		merged = merged[:topK]
	}

	chunks := make([]knowledge.Chunk, len(merged))
	var hasLive, hasLocal bool
	for i, m := range merged {
		chunks[i] = m.chunk
		if m.live {
			hasLive = true
		} else {
			hasLocal = true
		}
	}

	switch {
	case hasLive && hasLocal:
		return chunks, ProvenanceMixed
	case hasLive:
		return chunks, ProvenanceLive
	default:
		return chunks, ProvenanceLocal
	}
}

// BuildGroundingContext assembles the text passed to the reasoning step
// from the retrieved chunks. Empty input yields an empty string; the
// orchestrator substitutes its "no specific guidance" placeholder.
func BuildGroundingContext(chunks []knowledge.Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] (%s, relevance %.2f)\n%s", c.SourceName, c.Category, c.Score, strings.TrimSpace(c.Text))
	}
	return b.String()
}
