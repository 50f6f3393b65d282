package reasoning

import (
	"context"
	"time"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/llm"
	"medical-triage-be/pkg/store"
)

const analysisTimeout = 30 * time.Second

// Client wraps the external reasoning service. Any transport failure,
// timeout, or unusable reply degrades to the local rule table, so the
// caller always gets a successful AnalysisResult.
type Client struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewClient(provider llm.LLMProvider, log logger.ILogger) *Client {
	return &Client{
		provider: provider,
		logger:   log,
	}
}

// Analyze runs one reasoning pass over the symptoms with the supplied
// grounding context and conversation history.
func (c *Client) Analyze(ctx context.Context, sessionID, symptoms, groundingContext string, history []store.ConversationTurn) *AnalysisResult {
	prompt := buildMedicalPrompt(symptoms, groundingContext, summarizeHistory(history))

	if c.provider == nil {
		return fallbackAnalysis(sessionID, symptoms)
	}

	callCtx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	reply, err := c.provider.Generate(callCtx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		c.logger.Warn("reasoning", "service call failed, using fallback analysis", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return fallbackAnalysis(sessionID, symptoms)
	}

	result := parseReply(sessionID, reply)
	c.logger.Info("reasoning", "analysis complete", map[string]interface{}{
		"session_id": sessionID,
		"severity":   result.Severity,
		"fallback":   result.Fallback,
	})
	return result
}
