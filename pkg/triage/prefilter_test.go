package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsObviouslyNonMedical(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"capital question", "What is the capital of France?", true},
		{"famous person", "Tell me about Einstein", true},
		{"weather", "weather today in Berlin", true},
		{"symptom text passes", "I have chest pain", false},
		{"headache passes", "headache for 3 days", false},
		{"intake form bypasses filter", "Patient Profile: watched a movie, now symptoms: nausea", false},
		{"medication list bypasses filter", "current medications: aspirin. who is my doctor", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsObviouslyNonMedical(tt.text))
		})
	}
}
