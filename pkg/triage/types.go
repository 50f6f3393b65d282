package triage

import (
	"medical-triage-be/pkg/knowledge"
	"medical-triage-be/pkg/reasoning"
)

// Route is the care destination a triage case is dispatched to.
type Route string

const (
	RouteEmergency   Route = "EMERGENCY"
	RouteSelfCare    Route = "SELF-CARE"
	RouteAppointment Route = "APPOINTMENT"
	RouteNonMedical  Route = "NON-MEDICAL"
	RouteError       Route = "ERROR"
)

// CareDecision pairs a route with the analysis that produced it.
type CareDecision struct {
	Route    Route
	Analysis *reasoning.AnalysisResult
}

// Response is the terminal artifact of one triage pass. Never mutated
// after construction.
type Response struct {
	SessionID string
	Symptoms  string
	Route     Route
	Reply     string
	Severity  string
	Emergency bool
	Success   bool
	Fallback  bool
	Sources   []knowledge.Chunk
}
