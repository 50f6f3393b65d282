package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-triage-be/internal/dto"
	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/reasoning"
	"medical-triage-be/pkg/retrieval"
	"medical-triage-be/pkg/store"
	"medical-triage-be/pkg/triage"
)

type nopSessions struct{}

func (nopSessions) Record(ctx context.Context, sessionID, userText, systemText string) error {
	return nil
}

func (nopSessions) History(ctx context.Context, sessionID string) ([]store.ConversationTurn, error) {
	return nil, nil
}

type emptyRetriever struct{}

func (emptyRetriever) Retrieve(ctx context.Context, sessionID, query string, topK int) retrieval.Result {
	return retrieval.Result{Provenance: retrieval.ProvenanceLocal, Success: true}
}

type fixedAnalyzer struct {
	severity string
	analysis string
}

func (a fixedAnalyzer) Analyze(ctx context.Context, sessionID, symptoms, groundingContext string, history []store.ConversationTurn) *reasoning.AnalysisResult {
	return &reasoning.AnalysisResult{
		SessionID:      sessionID,
		Analysis:       a.analysis,
		Severity:       a.severity,
		Recommendation: "Call emergency services now",
		Success:        true,
	}
}

type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestChatPublishesAuditEventConsumableByWorker(t *testing.T) {
	orch := triage.NewOrchestrator(
		nopSessions{},
		emptyRetriever{},
		fixedAnalyzer{severity: "HIGH", analysis: "severe chest pain, emergency care required"},
		5,
		logger.NewNoopLogger(),
	)
	pub := &capturePublisher{}
	svc := NewTriageService(orch, pub, nil, logger.NewNoopLogger())

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Text:      "crushing chest pain radiating to my left arm",
		SessionID: "sess-7",
	})
	require.NoError(t, err)
	require.True(t, res.Emergency)

	// The published payload must parse as the consumer's message type.
	require.Len(t, pub.payloads, 1)
	var msg dto.TriageCompletedMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))

	assert.Equal(t, "sess-7", msg.SessionID)
	assert.Equal(t, string(triage.RouteEmergency), msg.Route)
	assert.Equal(t, "HIGH", msg.Severity)
	assert.True(t, msg.Emergency)
	assert.False(t, msg.Fallback)
	assert.False(t, msg.OccurredAt.IsZero())
}
