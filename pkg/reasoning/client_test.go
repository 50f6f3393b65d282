package reasoning

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/llm"
	"medical-triage-be/pkg/store"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func TestAnalyzeStructuredReply(t *testing.T) {
	provider := &stubProvider{reply: strings.Join([]string{
		"ASSESSMENT: Likely tension headache",
		"DIFFERENTIAL: Tension headache, migraine, dehydration",
		"RISK LEVEL: LOW",
		"CORRELATION: none",
		"RECOMMENDATION: Rest, hydration, and over-the-counter pain relief",
	}, "\n")}

	client := NewClient(provider, logger.NewNoopLogger())
	result := client.Analyze(context.Background(), "sess-1", "mild headache", "", nil)

	assert.True(t, result.Success)
	assert.False(t, result.Fallback)
	assert.Equal(t, SeverityLow, result.Severity)
	assert.Contains(t, result.Analysis, "tension headache")
	assert.Contains(t, result.Recommendation, "Rest")
}

func TestAnalyzeTransportFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}

	client := NewClient(provider, logger.NewNoopLogger())
	result := client.Analyze(context.Background(), "sess-2", "chest pain radiating to left arm", "", nil)

	assert.True(t, result.Success, "fallback must not surface as pipeline failure")
	assert.True(t, result.Fallback)
	assert.Equal(t, SeverityHigh, result.Severity)
	assert.NotEmpty(t, result.Recommendation)
}

func TestAnalyzeNilProviderFallsBack(t *testing.T) {
	client := NewClient(nil, logger.NewNoopLogger())
	result := client.Analyze(context.Background(), "sess-3", "mild sore throat", "", nil)

	assert.True(t, result.Success)
	assert.True(t, result.Fallback)
	assert.Equal(t, SeverityLow, result.Severity)
}

func TestAnalyzeNonMedicalReply(t *testing.T) {
	provider := &stubProvider{reply: "NON_MEDICAL_INPUT"}

	client := NewClient(provider, logger.NewNoopLogger())
	result := client.Analyze(context.Background(), "sess-4", "what is the capital of France", "", nil)

	assert.True(t, result.Success)
	assert.Equal(t, SeverityNonMedical, result.Severity)
}

func TestAnalyzeIncludesHistoryInPrompt(t *testing.T) {
	history := []store.ConversationTurn{
		{UserInput: "I had a headache yesterday", SystemResponse: "Rest and hydrate.", Timestamp: time.Now()},
	}
	summary := summarizeHistory(history)
	prompt := buildMedicalPrompt("headache is back", "General medical knowledge", summary)

	assert.Contains(t, prompt, "headache is back")
	assert.Contains(t, prompt, "I had a headache yesterday")
	assert.Contains(t, prompt, "RISK LEVEL:")
}
