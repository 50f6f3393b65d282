package triage

import "strings"

// Intake submissions carry these markers and must never be filtered,
// even when the rest of the text looks conversational.
var intakeMarkers = []string{
	"patient profile:",
	"medical history",
	"current medications",
	"symptoms:",
}

var obviousNonMedical = []string{
	"who is", "who was", "capital of", "president of",
	"movie", "song", "calculate", "weather today",
	"what is the capital", "biography of",
	"history of america", "history of france", "history of england",
}

var famousPeople = []string{"gandhi", "einstein", "shakespeare", "napoleon"}

// IsObviouslyNonMedical short-circuits clearly non-medical text before
// the pipeline runs. Conservative on purpose: anything ambiguous goes
// through the full pipeline where the reasoning step decides.
func IsObviouslyNonMedical(text string) bool {
	lower := strings.ToLower(text)

	for _, marker := range intakeMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}

	for _, pattern := range obviousNonMedical {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	for _, name := range famousPeople {
		if strings.Contains(lower, name) {
			return true
		}
	}

	return false
}
