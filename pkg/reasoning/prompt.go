package reasoning

import (
	"fmt"
	"strings"

	"medical-triage-be/pkg/store"
)

const nonMedicalMarker = "NON_MEDICAL_INPUT"

// buildMedicalPrompt assembles the structured triage prompt. The reply
// format is negotiated here and parsed in parser.go; the two must stay
// in sync.
func buildMedicalPrompt(symptoms, groundingContext, historySummary string) string {
	if groundingContext == "" {
		groundingContext = "General medical knowledge"
	}

	var b strings.Builder
	b.WriteString("You are a medical triage assistant. First, determine if the input describes medical symptoms or health concerns.\n\n")
	fmt.Fprintf(&b, "INPUT: %s\n\n", symptoms)
	fmt.Fprintf(&b, "MEDICAL CONTEXT:\n%s\n\n", groundingContext)

	if historySummary != "" {
		fmt.Fprintf(&b, "CONVERSATION SO FAR:\n%s\n\n", historySummary)
	}

	fmt.Fprintf(&b, "If this is NOT a medical query (like asking about capitals, general questions, etc.), respond with:\n%s\n\n", nonMedicalMarker)
	b.WriteString("If this IS a medical query, provide your assessment in this exact format:\n")
	b.WriteString("ASSESSMENT: [Brief medical assessment]\n")
	b.WriteString("DIFFERENTIAL: [Conditions that could explain the symptoms]\n")
	b.WriteString("RISK LEVEL: [HIGH/MODERATE/LOW]\n")
	b.WriteString("CORRELATION: [How the symptoms relate to prior conversation, or 'none']\n")
	b.WriteString("RECOMMENDATION: [Specific action recommendation]\n\n")
	b.WriteString("Focus on safety and appropriate level of care needed.")

	return b.String()
}

// summarizeHistory condenses prior turns into a short transcript. Long
// replies are truncated: the model needs the gist, not the templates.
func summarizeHistory(turns []store.ConversationTurn) string {
	if len(turns) == 0 {
		return ""
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		reply := turn.SystemResponse
		if len(reply) > 100 {
			reply = reply[:100] + "..."
		}
		fmt.Fprintf(&b, "[%s] Patient: %s | Assistant: %s",
			turn.Timestamp.Format("15:04:05"), turn.UserInput, reply)
	}
	return b.String()
}
