package dto

import "time"

type ChatRequest struct {
	Text      string `json:"text" validate:"required"`
	SessionID string `json:"sessionId"`
}

// SourceRef points at one knowledge source that grounded the reply.
type SourceRef struct {
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

type ChatResponse struct {
	SessionID  string      `json:"sessionId"`
	Reply      string      `json:"reply"`
	Route      string      `json:"route"`
	Emergency  bool        `json:"emergency"`
	Sources    []SourceRef `json:"sources"`
	Disclaimer string      `json:"disclaimer"`
}

// TriageCompletedMessage is the audit-trail payload published on the
// in-process event bus after every completed triage pass.
type TriageCompletedMessage struct {
	SessionID  string    `json:"session_id"`
	Route      string    `json:"route"`
	Severity   string    `json:"severity"`
	Emergency  bool      `json:"emergency"`
	Fallback   bool      `json:"fallback"`
	OccurredAt time.Time `json:"occurred_at"`
}
