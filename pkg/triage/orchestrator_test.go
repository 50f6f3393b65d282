package triage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/knowledge"
	"medical-triage-be/pkg/llm"
	"medical-triage-be/pkg/reasoning"
	"medical-triage-be/pkg/retrieval"
	"medical-triage-be/pkg/store"
)

type memSessions struct {
	mu    sync.Mutex
	turns map[string][]store.ConversationTurn
	fail  bool
}

func newMemSessions() *memSessions {
	return &memSessions{turns: make(map[string][]store.ConversationTurn)}
}

func (m *memSessions) Record(ctx context.Context, sessionID, userText, systemText string) error {
	if m.fail {
		return errors.New("store down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[sessionID] = append(m.turns[sessionID], store.ConversationTurn{
		UserInput:      userText,
		SystemResponse: systemText,
	})
	return nil
}

func (m *memSessions) History(ctx context.Context, sessionID string) ([]store.ConversationTurn, error) {
	if m.fail {
		return nil, errors.New("store down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]store.ConversationTurn, len(m.turns[sessionID]))
	copy(snapshot, m.turns[sessionID])
	return snapshot, nil
}

type stubRetriever struct {
	result retrieval.Result
}

func (s *stubRetriever) Retrieve(ctx context.Context, sessionID, query string, topK int) retrieval.Result {
	return s.result
}

// failingProvider forces the reasoning client onto its deterministic
// fallback path so routing assertions are stable.
type failingProvider struct{}

func (failingProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return "", errors.New("unreachable")
}

func (failingProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", errors.New("unreachable")
}

func newTestOrchestrator(sessions SessionStore, retrieved retrieval.Result) *Orchestrator {
	analyzer := reasoning.NewClient(failingProvider{}, logger.NewNoopLogger())
	return NewOrchestrator(sessions, &stubRetriever{result: retrieved}, analyzer, 5, logger.NewNoopLogger())
}

func localResult() retrieval.Result {
	return retrieval.Result{
		Chunks: []knowledge.Chunk{
			{ID: "kb-001", Text: "Chest pain guidance", SourceName: "Knowledge Base", Category: knowledge.CategoryRedFlag, Score: 0.9},
		},
		Provenance: retrieval.ProvenanceLocal,
		Success:    true,
	}
}

func TestProcessEmergencyScenario(t *testing.T) {
	sessions := newMemSessions()
	o := newTestOrchestrator(sessions, localResult())

	resp := o.Process(context.Background(), "sess-em",
		"I have severe crushing chest pain radiating to my left arm, sweating")

	require.True(t, resp.Success)
	assert.Equal(t, RouteEmergency, resp.Route)
	assert.True(t, resp.Emergency)
	assert.Contains(t, resp.Reply, "911")
	assert.Len(t, resp.Sources, 1)

	history, err := sessions.History(context.Background(), "sess-em")
	require.NoError(t, err)
	require.Len(t, history, 1, "completed case records one turn")
	assert.Contains(t, history[0].UserInput, "chest pain")
}

func TestProcessSelfCareScenario(t *testing.T) {
	o := newTestOrchestrator(newMemSessions(), localResult())

	resp := o.Process(context.Background(), "sess-sc", "mild headache and runny nose, no fever")

	require.True(t, resp.Success)
	assert.Equal(t, RouteSelfCare, resp.Route)
	assert.False(t, resp.Emergency)
	assert.Contains(t, resp.Reply, "HOME CARE")
}

func TestProcessNonMedicalScenario(t *testing.T) {
	o := newTestOrchestrator(newMemSessions(), retrieval.Result{Success: false})

	resp := o.Process(context.Background(), "sess-nm", "what is the capital of France")

	require.True(t, resp.Success)
	assert.Equal(t, RouteNonMedical, resp.Route)
	assert.Contains(t, resp.Reply, "medical triage assistant")
}

func TestProcessDefaultsToAppointment(t *testing.T) {
	o := newTestOrchestrator(newMemSessions(), localResult())

	resp := o.Process(context.Background(), "sess-ap", "persistent abdominal discomfort for two days")

	require.True(t, resp.Success)
	assert.Equal(t, RouteAppointment, resp.Route)
	assert.Contains(t, resp.Reply, "APPOINTMENT")
}

func TestProcessIdempotentOnFallbackPath(t *testing.T) {
	o := newTestOrchestrator(newMemSessions(), localResult())

	first := o.Process(context.Background(), "sess-idem", "mild sore throat")
	second := o.Process(context.Background(), "sess-idem", "mild sore throat")

	assert.Equal(t, first.Route, second.Route)
	assert.Equal(t, first.Severity, second.Severity)
}

func TestProcessSurvivesSessionStoreFailure(t *testing.T) {
	sessions := newMemSessions()
	sessions.fail = true
	o := newTestOrchestrator(sessions, localResult())

	resp := o.Process(context.Background(), "sess-fail", "mild headache")

	assert.True(t, resp.Success, "history and record failures are best effort")
	assert.Equal(t, RouteSelfCare, resp.Route)
}

func TestProcessEmptyRetrievalStillCompletes(t *testing.T) {
	o := newTestOrchestrator(newMemSessions(), retrieval.Result{Success: false})

	resp := o.Process(context.Background(), "sess-empty", "persistent lower back pain")

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Sources)
	assert.Equal(t, RouteAppointment, resp.Route)
}

type panickingRetriever struct{}

func (panickingRetriever) Retrieve(ctx context.Context, sessionID, query string, topK int) retrieval.Result {
	panic("index corrupted")
}

func TestProcessPanicYieldsErroredResponse(t *testing.T) {
	analyzer := reasoning.NewClient(failingProvider{}, logger.NewNoopLogger())
	o := NewOrchestrator(newMemSessions(), panickingRetriever{}, analyzer, 5, logger.NewNoopLogger())

	resp := o.Process(context.Background(), "sess-panic", "headache")

	assert.False(t, resp.Success)
	assert.Equal(t, RouteError, resp.Route)
	assert.Contains(t, resp.Reply, "temporarily unavailable")
}
