package triage

import (
	"context"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/reasoning"
	"medical-triage-be/pkg/retrieval"
	"medical-triage-be/pkg/store"
)

// State tracks where a triage case is in the pipeline.
type State string

const (
	StateReceived      State = "received"
	StateContextLoaded State = "context_loaded"
	StateRetrieved     State = "retrieved"
	StateAnalyzed      State = "analyzed"
	StateRouted        State = "routed"
	StateCompleted     State = "completed"
	StateErrored       State = "errored"
)

const noGroundingContext = "No specific guidance available"

// SessionStore is the conversation history the orchestrator reads
// before retrieval and appends to on completion.
type SessionStore interface {
	Record(ctx context.Context, sessionID, userText, systemText string) error
	History(ctx context.Context, sessionID string) ([]store.ConversationTurn, error)
}

// Retriever produces grounding chunks for a symptom query.
type Retriever interface {
	Retrieve(ctx context.Context, sessionID, query string, topK int) retrieval.Result
}

// Analyzer runs the reasoning pass. Implementations never surface
// transport failure; they fall back internally.
type Analyzer interface {
	Analyze(ctx context.Context, sessionID, symptoms, groundingContext string, history []store.ConversationTurn) *reasoning.AnalysisResult
}

// Orchestrator drives one symptom query through history load,
// retrieval, analysis, routing, and response rendering. Each request
// runs independently; the session store is the only shared state.
type Orchestrator struct {
	sessions   SessionStore
	retriever  Retriever
	analyzer   Analyzer
	responders map[Route]Responder
	topK       int
	logger     logger.ILogger
}

func NewOrchestrator(sessions SessionStore, retriever Retriever, analyzer Analyzer, topK int, log logger.ILogger) *Orchestrator {
	if topK <= 0 {
		topK = 5
	}
	return &Orchestrator{
		sessions:   sessions,
		retriever:  retriever,
		analyzer:   analyzer,
		responders: Responders(),
		topK:       topK,
		logger:     log,
	}
}

// Process runs the full pipeline for one query. The caller suspends
// until the case is Completed or Errored; adapter failures are
// absorbed by the stages, so the errored path only covers defects in
// the pipeline itself.
func (o *Orchestrator) Process(ctx context.Context, sessionID, symptoms string) (resp *Response) {
	state := StateReceived
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("orchestrator", "pipeline panic", map[string]interface{}{
				"session_id": sessionID,
				"state":      string(state),
				"panic":      r,
			})
			resp = o.erroredResponse(sessionID, symptoms)
		}
	}()

	history, err := o.sessions.History(ctx, sessionID)
	if err != nil {
		// History is best effort; an unreadable session triages as new.
		o.logger.Warn("orchestrator", "history load failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		history = nil
	}
	state = StateContextLoaded

	retrieved := o.retriever.Retrieve(ctx, sessionID, symptoms, o.topK)
	state = StateRetrieved

	grounding := retrieval.BuildGroundingContext(retrieved.Chunks)
	if grounding == "" {
		grounding = noGroundingContext
	}

	analysis := o.analyzer.Analyze(ctx, sessionID, symptoms, grounding, history)
	state = StateAnalyzed
	if !analysis.Success {
		o.logger.Error("orchestrator", "analysis failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      analysis.ErrorMessage,
		})
		return o.erroredResponse(sessionID, symptoms)
	}

	decision := Classify(analysis)
	state = StateRouted
	o.logger.Info("orchestrator", "case routed", map[string]interface{}{
		"session_id": sessionID,
		"route":      string(decision.Route),
		"severity":   analysis.Severity,
		"provenance": string(retrieved.Provenance),
		"fallback":   analysis.Fallback,
	})

	reply := o.responders[decision.Route].Render(sessionID, symptoms, analysis)

	if err := o.sessions.Record(ctx, sessionID, symptoms, reply); err != nil {
		o.logger.Warn("orchestrator", "turn record failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	state = StateCompleted

	return &Response{
		SessionID: sessionID,
		Symptoms:  symptoms,
		Route:     decision.Route,
		Reply:     reply,
		Severity:  analysis.Severity,
		Emergency: decision.Route == RouteEmergency,
		Success:   true,
		Fallback:  analysis.Fallback,
		Sources:   retrieved.Chunks,
	}
}

func (o *Orchestrator) erroredResponse(sessionID, symptoms string) *Response {
	return &Response{
		SessionID: sessionID,
		Symptoms:  symptoms,
		Route:     RouteError,
		Reply: "System temporarily unavailable. If you believe you are experiencing " +
			"a medical emergency, call 911 or contact your local emergency services.",
		Severity: "unknown",
		Success:  false,
	}
}
