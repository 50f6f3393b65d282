package events

import "time"

const (
	TypeTriageCompleted = "triage.completed"
	TypeTriageEmergency = "triage.emergency"
)

// NewTriageCompleted records one finished triage pass for the audit trail.
func NewTriageCompleted(sessionID, route, severity string, emergency, fallback bool) Event {
	return BaseEvent{
		Type: TypeTriageCompleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"route":      route,
			"severity":   severity,
			"emergency":  emergency,
			"fallback":   fallback,
		},
		OccurredAt: time.Now(),
	}
}

// NewTriageEmergency flags a case routed to emergency care. Published
// to the alert bus in addition to the audit trail.
func NewTriageEmergency(sessionID, severity, recommendation string) Event {
	return BaseEvent{
		Type: TypeTriageEmergency,
		Data: map[string]interface{}{
			"session_id":     sessionID,
			"severity":       severity,
			"recommendation": recommendation,
		},
		OccurredAt: time.Now(),
	}
}
