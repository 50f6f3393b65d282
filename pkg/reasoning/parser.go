package reasoning

import "strings"

// parsedReply holds the five labeled sections of a reasoning reply.
// Every field has a safety-biased default so a sloppy reply still
// produces a routable result.
type parsedReply struct {
	assessment     string
	differential   string
	riskLevel      string
	correlation    string
	recommendation string
}

const defaultRecommendation = "Consult with healthcare professional for proper assessment"

// parseReply extracts the labeled sections from a reasoning service
// reply. Missing sections default; risk defaults to MODERATE, never to
// a level that would under-triage.
func parseReply(sessionID, raw string) *AnalysisResult {
	trimmed := strings.TrimSpace(raw)

	if trimmed == nonMedicalMarker || strings.Contains(strings.ToUpper(trimmed), nonMedicalMarker) {
		return successResult(sessionID,
			"Non-medical input detected",
			SeverityNonMedical,
			"Please describe your medical symptoms or health concerns for triage assistance.")
	}

	parsed := parsedReply{riskLevel: SeverityModerate}

	for _, line := range strings.Split(raw, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(upper, "ASSESSMENT:"):
			parsed.assessment = sectionValue(line)
		case strings.HasPrefix(upper, "DIFFERENTIAL:"):
			parsed.differential = sectionValue(line)
		case strings.HasPrefix(upper, "RISK LEVEL:"):
			if v := normalizeRisk(sectionValue(line)); v != "" {
				parsed.riskLevel = v
			}
		case strings.HasPrefix(upper, "CORRELATION:"):
			parsed.correlation = sectionValue(line)
		case strings.HasPrefix(upper, "RECOMMENDATION:"):
			parsed.recommendation = sectionValue(line)
		}
	}

	if parsed.assessment == "" {
		// Unstructured reply: keep a readable excerpt as the narrative.
		if len(trimmed) > 200 {
			parsed.assessment = trimmed[:200] + "..."
		} else {
			parsed.assessment = trimmed
		}
	}
	if parsed.recommendation == "" {
		parsed.recommendation = defaultRecommendation
	}

	return successResult(sessionID, parsed.narrative(), parsed.riskLevel, parsed.recommendation)
}

// narrative joins the descriptive sections into the free-text clinical
// narrative carried by the AnalysisResult.
func (p parsedReply) narrative() string {
	parts := make([]string, 0, 3)
	if p.assessment != "" {
		parts = append(parts, p.assessment)
	}
	if p.differential != "" {
		parts = append(parts, "Differential: "+p.differential)
	}
	if p.correlation != "" && !strings.EqualFold(p.correlation, "none") {
		parts = append(parts, "Correlation: "+p.correlation)
	}
	return strings.Join(parts, " ")
}

func sectionValue(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}

// normalizeRisk maps loosely-worded risk levels onto the severity tags.
// Unknown wording returns "" so the MODERATE default stands.
func normalizeRisk(raw string) string {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "NON_MEDICAL"):
		return SeverityNonMedical
	case strings.Contains(upper, "HIGH"), strings.Contains(upper, "SEVERE"), strings.Contains(upper, "CRITICAL"):
		return SeverityHigh
	case strings.Contains(upper, "LOW"), strings.Contains(upper, "MILD"), strings.Contains(upper, "MINOR"):
		return SeverityLow
	case strings.Contains(upper, "MODERATE"), strings.Contains(upper, "MEDIUM"):
		return SeverityModerate
	default:
		return ""
	}
}
