package store

import "time"

// ConversationTurn is one exchange inside a triage session: what the
// user reported and what the system replied.
type ConversationTurn struct {
	UserInput      string    `json:"user_input"`
	SystemResponse string    `json:"system_response"`
	Timestamp      time.Time `json:"timestamp"`
}

// Session represents the active triage session state in memory.
// Turns are ordered oldest first and bounded by the configured history
// limit; the store owns all mutation.
type Session struct {
	ID    string             `json:"id"`
	Turns []ConversationTurn `json:"turns"`
}
