package retrieval

import (
	"context"
	"strings"
	"testing"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/embedding"
	"medical-triage-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coordinatorCorpus = `{"id":"kb-001","text":"chest pain radiating to arm with sweating suggests a cardiac emergency call 911","source_name":"Guidelines","source_url":"https://example.org/chest","category":"red_flag","tags":["chest pain"]}
{"id":"kb-002","text":"mild headache and runny nose usually resolve with rest fluids and over-the-counter remedies","source_name":"Guidelines","source_url":"https://example.org/cold","category":"self_care","tags":["headache"]}
{"id":"kb-003","text":"persistent fever lasting more than three days should be evaluated by a healthcare provider","source_name":"Guidelines","source_url":"https://example.org/fever","category":"appointment","tags":["fever"]}`

type stubFetcher struct {
	chunks []knowledge.Chunk
	calls  int
}

func (s *stubFetcher) FetchMedicalInfo(ctx context.Context, symptom, sessionID string) []knowledge.Chunk {
	s.calls++
	return s.chunks
}

func newTestCoordinator(t *testing.T, fetcher LiveFetcher, cfg Config) *Coordinator {
	t.Helper()

	chunks, _, err := knowledge.LoadCorpus(strings.NewReader(coordinatorCorpus))
	require.NoError(t, err)

	provider := embedding.NewSimpleProvider()
	idx, err := knowledge.NewMemoryIndex(chunks, provider)
	require.NoError(t, err)

	return NewCoordinator(idx, provider, fetcher, cfg, logger.NewNoopLogger())
}

func TestRetrieveReturnsAtMostTopKOrdered(t *testing.T) {
	c := newTestCoordinator(t, nil, Config{TopK: 2, MinSimilarity: 0.2, LiveFetchThreshold: 0.0})

	res := c.Retrieve(context.Background(), "s1", "chest pain radiating to arm sweating", 2)

	require.True(t, res.Success)
	require.LessOrEqual(t, len(res.Chunks), 2)
	for i := 1; i < len(res.Chunks); i++ {
		assert.GreaterOrEqual(t, res.Chunks[i-1].Score, res.Chunks[i].Score)
	}
	assert.Equal(t, ProvenanceLocal, res.Provenance)
}

func TestRetrieveFallsBackToLiveOnLowConfidence(t *testing.T) {
	fetcher := &stubFetcher{chunks: []knowledge.Chunk{{
		ID:         "live_nhs_s1",
		Text:       "fresh NHS guidance",
		SourceName: "NHS",
		Category:   knowledge.CategoryAppointment,
		Score:      0.95,
	}}}

	// Threshold above any hash-embedding score forces the live path.
	c := newTestCoordinator(t, fetcher, Config{TopK: 3, MinSimilarity: 0.99, LiveFetchThreshold: 0.99})

	res := c.Retrieve(context.Background(), "s1", "some rare unusual complaint", 3)

	require.True(t, res.Success)
	require.Equal(t, 1, fetcher.calls)
	assert.Equal(t, ProvenanceLive, res.Provenance)
	assert.Equal(t, "live_nhs_s1", res.Chunks[0].ID)
}

func TestRetrieveKeepsLocalWhenLiveEmpty(t *testing.T) {
	fetcher := &stubFetcher{} // always empty
	c := newTestCoordinator(t, fetcher, Config{TopK: 3, MinSimilarity: 0.2, LiveFetchThreshold: 0.99})

	res := c.Retrieve(context.Background(), "s1", "chest pain", 3)

	require.True(t, res.Success)
	require.NotEmpty(t, res.Chunks, "non-empty corpus must yield at least one chunk")
	assert.Equal(t, ProvenanceLocal, res.Provenance)
}

func TestRetrieveMergesLiveAndLocal(t *testing.T) {
	fetcher := &stubFetcher{chunks: []knowledge.Chunk{{
		ID: "live_mayo_s1", Text: "live guidance", SourceName: "Mayo Clinic", Score: 0.92,
	}}}
	// MinSimilarity 0 keeps every local chunk eligible for the merge.
	c := newTestCoordinator(t, fetcher, Config{TopK: 5, MinSimilarity: 0.0, LiveFetchThreshold: 0.99})

	res := c.Retrieve(context.Background(), "s1", "chest pain", 5)

	require.True(t, res.Success)
	assert.Equal(t, ProvenanceMixed, res.Provenance)
	assert.Equal(t, "live_mayo_s1", res.Chunks[0].ID)
}

type stubIndex struct {
	chunks []knowledge.Chunk
}

func (s *stubIndex) Search(ctx context.Context, queryVector []float32, topK int) ([]knowledge.Chunk, error) {
	if topK > len(s.chunks) {
		topK = len(s.chunks)
	}
	return s.chunks[:topK], nil
}

func (s *stubIndex) Len() int { return len(s.chunks) }

func TestRetrieveProvenanceReflectsReturnedChunks(t *testing.T) {
	idx := &stubIndex{chunks: []knowledge.Chunk{
		{ID: "local-high", Text: "local guidance", SourceName: "Knowledge Base", Score: 0.55},
		{ID: "local-low", Text: "weaker local guidance", SourceName: "Knowledge Base", Score: 0.30},
	}}
	fetcher := &stubFetcher{chunks: []knowledge.Chunk{{
		ID: "live_nhs_s1", Text: "live guidance", SourceName: "NHS", Score: 0.50,
	}}}

	// Threshold above the best local score forces the merge path; the
	// cap then keeps only the top local chunk.
	c := NewCoordinator(idx, embedding.NewSimpleProvider(), fetcher,
		Config{TopK: 1, MinSimilarity: 0.2, LiveFetchThreshold: 0.60}, logger.NewNoopLogger())

	res := c.Retrieve(context.Background(), "s1", "chest pain", 1)

	require.True(t, res.Success)
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "local-high", res.Chunks[0].ID)
	assert.Equal(t, ProvenanceLocal, res.Provenance,
		"provenance must describe the surviving chunks, not the merge inputs")

	// With room for both, the same inputs report a mixed result.
	res = c.Retrieve(context.Background(), "s1", "chest pain", 3)
	require.True(t, res.Success)
	assert.Equal(t, ProvenanceMixed, res.Provenance)
}

func TestRetrieveEmptyCorpusAndLiveFailure(t *testing.T) {
	provider := embedding.NewSimpleProvider()
	idx, err := knowledge.NewMemoryIndex(nil, provider)
	require.NoError(t, err)

	fetcher := &stubFetcher{}
	c := NewCoordinator(idx, provider, fetcher, Config{TopK: 5}, logger.NewNoopLogger())

	res := c.Retrieve(context.Background(), "s1", "anything", 5)

	assert.False(t, res.Success)
	assert.Empty(t, res.Chunks)
}

func TestExtractPrimarySymptom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I have crushing chest pain and sweating", "chest pain"},
		{"been throwing up all night", "vomiting"},
		{"my head pain is constant", "headache"},
		{"shortness of breath when climbing stairs", "shortness of breath"},
		{"weird tingling sensation", "weird tingling sensation"},
		{"terrible backache since morning", "backache"},
	}

	for _, tt := range tests {
		if got := ExtractPrimarySymptom(tt.in); got != tt.want {
			t.Errorf("ExtractPrimarySymptom(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildGroundingContext(t *testing.T) {
	assert.Equal(t, "", BuildGroundingContext(nil))

	ctx := BuildGroundingContext([]knowledge.Chunk{
		{SourceName: "NHS", Category: "red_flag", Score: 0.9, Text: "seek help"},
		{SourceName: "Mayo Clinic", Category: "self_care", Score: 0.5, Text: "rest at home"},
	})
	assert.Contains(t, ctx, "NHS")
	assert.Contains(t, ctx, "Mayo Clinic")
	assert.Contains(t, ctx, "seek help")
}
