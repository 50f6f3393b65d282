package retrieval

import "strings"

// symptomKeyword maps recognizable phrasings to the canonical keyword
// used for live lookups. Ordered: first match wins.
type symptomKeyword struct {
	canonical string
	variants  []string
}

var symptomKeywords = []symptomKeyword{
	{"chest pain", []string{"chest pain", "heart pain"}},
	{"vomiting", []string{"vomiting", "throwing up", "nausea"}},
	{"back pain", []string{"back pain", "spine"}},
	{"headache", []string{"headache", "head pain"}},
	{"shortness of breath", []string{"breathing", "shortness of breath", "dyspnea"}},
	{"diarrhea", []string{"diarrhea", "loose stools"}},
	{"fever", []string{"fever", "temperature"}},
	{"cough", []string{"cough", "coughing"}},
	{"dizziness", []string{"dizziness", "dizzy"}},
	{"abdominal pain", []string{"stomach", "abdominal"}},
}

// ExtractPrimarySymptom reduces free-text symptom descriptions to a
// single keyword suitable for a live source lookup. Falls back to the
// literal input when nothing matches.
func ExtractPrimarySymptom(userInput string) string {
	input := strings.ToLower(userInput)

	for _, kw := range symptomKeywords {
		for _, variant := range kw.variants {
			if strings.Contains(input, variant) {
				return kw.canonical
			}
		}
	}

	// Last resort: first medical-sounding word.
	for _, word := range strings.Fields(input) {
		if len(word) > 4 && (strings.Contains(word, "pain") ||
			strings.Contains(word, "ache") ||
			strings.Contains(word, "hurt") ||
			strings.Contains(word, "sick")) {
			return word
		}
	}

	return strings.TrimSpace(userInput)
}
