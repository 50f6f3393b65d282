package livefetch

import (
	"testing"

	"medical-triage-be/pkg/knowledge"
)

func TestDetermineCategory(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "emergency wording",
			content: "If you have these symptoms call 911 or go to the nearest emergency room",
			want:    knowledge.CategoryRedFlag,
		},
		{
			name:    "self care wording",
			content: "This condition is usually mild and responds to rest and over-the-counter remedies",
			want:    knowledge.CategorySelfCare,
		},
		{
			name:    "neutral wording",
			content: "Talk to your doctor about persistent symptoms and treatment options available",
			want:    knowledge.CategoryAppointment,
		},
		{
			name:    "red flag wins over self care",
			content: "Mild cases resolve at home but severe chest pain needs an ambulance",
			want:    knowledge.CategoryRedFlag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineCategory(tt.content); got != tt.want {
				t.Errorf("DetermineCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanSymptomForURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I have chest pain", "chest-pain"},
		{"experiencing back pain", "back-pain"},
		{"Headache!", "headache"},
		{"shortness of breath", "shortness-of-breath"},
	}

	for _, tt := range tests {
		if got := cleanSymptomForURL(tt.in); got != tt.want {
			t.Errorf("cleanSymptomForURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourceURLBuilders(t *testing.T) {
	if got := buildNHSURL("chest-pain"); got != "https://www.nhs.uk/conditions/chest-pain/" {
		t.Errorf("buildNHSURL = %q", got)
	}
	if got := buildMayoURL("headache"); got != "https://www.mayoclinic.org/diseases-conditions/headaches/symptoms-causes/syc-20377913" {
		t.Errorf("buildMayoURL = %q", got)
	}
	if got := buildMedlinePlusURL("unknown-thing"); got != "https://medlineplus.gov/healthtopics.html" {
		t.Errorf("buildMedlinePlusURL fallback = %q", got)
	}
}
