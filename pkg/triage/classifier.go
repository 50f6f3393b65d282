package triage

import (
	"strings"

	"medical-triage-be/pkg/reasoning"
)

// classificationRule is one (predicate, outcome) row of the routing
// cascade. Ordered: the first matching rule wins, and the cascade
// falls through to Appointment so uncertainty never resolves toward
// under-treatment.
type classificationRule struct {
	route           Route
	severityMarkers []string // any-of match against the lowercased severity tag
	textMarkers     []string // any-of match against the lowercased analysis text
}

var classificationRules = []classificationRule{
	{
		route:           RouteNonMedical,
		severityMarkers: []string{"non_medical"},
	},
	{
		route:           RouteEmergency,
		severityMarkers: []string{"high", "severe", "critical"},
		textMarkers: []string{
			"emergency", "urgent", "chest pain", "difficulty breathing",
			"severe pain", "911",
		},
	},
	{
		route:           RouteSelfCare,
		severityMarkers: []string{"low", "mild", "minor"},
		textMarkers: []string{
			"rest", "home care", "over-the-counter", "self-treat",
		},
	},
}

// Classify maps an analysis onto a care route using the ordered rule
// cascade. A rule matches when either its severity markers or its text
// markers hit.
func Classify(result *reasoning.AnalysisResult) CareDecision {
	severity := strings.ToLower(result.Severity)
	analysis := strings.ToLower(result.Analysis)

	for _, rule := range classificationRules {
		if containsAny(severity, rule.severityMarkers) || containsAny(analysis, rule.textMarkers) {
			return CareDecision{Route: rule.route, Analysis: result}
		}
	}
	return CareDecision{Route: RouteAppointment, Analysis: result}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
