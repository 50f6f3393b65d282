package reasoning

// Severity tags driving care routing.
const (
	SeverityHigh       = "HIGH"
	SeverityModerate   = "MODERATE"
	SeverityLow        = "LOW"
	SeverityNonMedical = "NON_MEDICAL"
)

// AnalysisResult is the structured outcome of one analysis pass,
// whether it came from the reasoning service or the local rule table.
type AnalysisResult struct {
	SessionID      string
	Analysis       string
	Severity       string
	Recommendation string
	Success        bool
	ErrorMessage   string

	// Fallback marks results produced by the local rule table. The
	// analysis text also carries the marker for human readers.
	Fallback bool
}

func successResult(sessionID, analysis, severity, recommendation string) *AnalysisResult {
	return &AnalysisResult{
		SessionID:      sessionID,
		Analysis:       analysis,
		Severity:       severity,
		Recommendation: recommendation,
		Success:        true,
	}
}
