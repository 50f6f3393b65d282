package reasoning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAnalysisRules(t *testing.T) {
	tests := []struct {
		name         string
		symptoms     string
		wantSeverity string
	}{
		{"chest pain is emergency", "crushing chest pain radiating to my arm", SeverityHigh},
		{"breathing difficulty is emergency", "sudden difficulty breathing", SeverityHigh},
		{"mild headache is self care", "I have a mild headache", SeverityLow},
		{"runny nose is self care", "runny nose and sneezing", SeverityLow},
		{"capital question is non-medical", "what is the capital of France", SeverityNonMedical},
		{"recipe question is non-medical", "give me a pasta recipe", SeverityNonMedical},
		{"unmatched symptoms default to moderate", "persistent abdominal discomfort for two days", SeverityModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fallbackAnalysis("sess-fb", tt.symptoms)

			assert.True(t, result.Success, "fallback always succeeds")
			assert.True(t, result.Fallback)
			assert.Equal(t, tt.wantSeverity, result.Severity)
			assert.NotEmpty(t, result.Recommendation)
		})
	}
}

func TestFallbackAnalysisMarksMedicalResults(t *testing.T) {
	medical := fallbackAnalysis("sess-fb", "mild headache")
	assert.Contains(t, medical.Analysis, "(Fallback analysis used)")

	nonMedical := fallbackAnalysis("sess-fb", "what is the weather today")
	assert.NotContains(t, nonMedical.Analysis, "(Fallback analysis used)")
}

func TestFallbackEmergencyBeatsSelfCare(t *testing.T) {
	// "mild" also appears, but the emergency rule is checked first.
	result := fallbackAnalysis("sess-fb", "mild cough but now severe pain in chest")
	assert.Equal(t, SeverityHigh, result.Severity)
}
