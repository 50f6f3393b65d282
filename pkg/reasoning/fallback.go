package reasoning

import "strings"

// fallbackRule is one (predicate, outcome) row of the deterministic
// rule table used when the reasoning service is unavailable. Ordered:
// the first matching rule wins.
type fallbackRule struct {
	name           string
	keywords       []string // any-of match against the lowercased input
	severity       string
	analysis       string
	recommendation string
}

var fallbackRules = []fallbackRule{
	{
		name: "non-medical",
		keywords: []string{
			"capital", "weather", "hello", "what is", "how to",
			"calculate", "recipe", "movie", "book",
		},
		severity: SeverityNonMedical,
		analysis: "Non-medical input detected",
		recommendation: "I'm a medical triage assistant. Please describe your medical " +
			"symptoms or health concerns so I can help assess your situation.",
	},
	{
		name: "emergency",
		keywords: []string{
			"chest pain", "shortness of breath", "difficulty breathing",
			"severe pain", "unconscious", "bleeding",
		},
		severity: SeverityHigh,
		analysis: "Symptoms indicate potential medical emergency. " +
			"Chest pain and breathing difficulties require immediate evaluation " +
			"to rule out cardiac or pulmonary emergencies.",
		recommendation: "Seek immediate emergency medical care. Call 911 or go to nearest ER.",
	},
	{
		name: "self-care",
		keywords: []string{
			"mild", "minor", "headache", "runny nose", "sore throat", "cough",
		},
		severity: SeverityLow,
		analysis: "Symptoms suggest minor condition likely manageable with home care. " +
			"Appears to be common cold, minor headache, or similar mild condition.",
		recommendation: "Try home remedies, rest, hydration. Monitor for worsening.",
	},
}

var fallbackDefault = fallbackRule{
	name:     "default",
	severity: SeverityModerate,
	analysis: "Symptoms require medical evaluation to determine appropriate treatment. " +
		"Not immediately life-threatening but warrant professional assessment.",
	recommendation: "Schedule appointment with healthcare provider within 1-2 weeks.",
}

// fallbackAnalysis classifies symptoms with the rule table. Always
// succeeds; the analysis text carries the fallback marker.
func fallbackAnalysis(sessionID, symptoms string) *AnalysisResult {
	lower := strings.ToLower(symptoms)

	rule := fallbackDefault
	for _, r := range fallbackRules {
		if matchesAny(lower, r.keywords) {
			rule = r
			break
		}
	}

	analysis := rule.analysis
	if rule.severity != SeverityNonMedical {
		analysis += " (Fallback analysis used)"
	}

	result := successResult(sessionID, analysis, rule.severity, rule.recommendation)
	result.Fallback = true
	return result
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
