package triage

import (
	"fmt"

	"medical-triage-be/pkg/reasoning"
)

// Responder renders the user-facing reply for one care route. All four
// implementations are stateless templates; rendering never fails.
type Responder interface {
	Route() Route
	Render(sessionID, symptoms string, analysis *reasoning.AnalysisResult) string
}

// Responders returns the full route-to-responder table.
func Responders() map[Route]Responder {
	return map[Route]Responder{
		RouteEmergency:   emergencyResponder{},
		RouteSelfCare:    selfCareResponder{},
		RouteAppointment: appointmentResponder{},
		RouteNonMedical:  nonMedicalResponder{},
	}
}

type emergencyResponder struct{}

func (emergencyResponder) Route() Route { return RouteEmergency }

func (emergencyResponder) Render(sessionID, symptoms string, analysis *reasoning.AnalysisResult) string {
	return fmt.Sprintf(`EMERGENCY MEDICAL ATTENTION REQUIRED

Based on your symptoms: %s
Severity Assessment: %s

IMMEDIATE ACTIONS REQUIRED:
- Call 911 or emergency services immediately
- Do NOT drive yourself - call ambulance if needed
- If chest pain: Take aspirin if not allergic (unless told otherwise)
- If breathing difficulty: Sit upright, loosen tight clothing
- Stay calm and follow emergency dispatcher instructions

MEDICAL ANALYSIS:
%s

WHY THIS IS URGENT:
These symptoms may indicate serious conditions such as heart attack, stroke,
pulmonary embolism, or other life-threatening emergencies that require
immediate medical intervention. Time is critical for the best outcomes.

This is a medical emergency - do not delay seeking professional care!`,
		symptoms, analysis.Severity, analysis.Analysis)
}

type selfCareResponder struct{}

func (selfCareResponder) Route() Route { return RouteSelfCare }

func (selfCareResponder) Render(sessionID, symptoms string, analysis *reasoning.AnalysisResult) string {
	return fmt.Sprintf(`SELF-CARE RECOMMENDATIONS

Symptoms: %s
Severity: %s

HOME CARE GUIDELINES:
- Get plenty of rest and sleep
- Stay well hydrated with water, herbal teas
- Consider over-the-counter remedies as appropriate
- Apply heat/cold therapy if applicable
- Monitor symptoms for changes

Analysis: %s

WHEN TO SEEK MEDICAL CARE:
- Symptoms worsen or don't improve in 3-5 days
- New concerning symptoms develop
- Fever rises above 103F (39.4C)
- You feel unsure about your condition

Contact your healthcare provider if you have concerns.`,
		symptoms, analysis.Severity, analysis.Analysis)
}

type appointmentResponder struct{}

func (appointmentResponder) Route() Route { return RouteAppointment }

func (appointmentResponder) Render(sessionID, symptoms string, analysis *reasoning.AnalysisResult) string {
	return fmt.Sprintf(`MEDICAL APPOINTMENT RECOMMENDED

Symptoms: %s
Severity: %s

NEXT STEPS:
- Contact your primary care physician
- Schedule appointment within 1-2 weeks (sooner if symptoms worsen)
- If no regular doctor, consider urgent care or walk-in clinic

PREPARATION FOR APPOINTMENT:
- List all symptoms and when they started
- Note what makes symptoms better or worse
- Bring list of current medications
- Prepare questions for your healthcare provider

Analysis: %s

SEEK URGENT CARE IF:
- Symptoms suddenly worsen
- New concerning symptoms develop
- You develop fever above 101F
- You feel the situation has changed

Early medical consultation can prevent complications.`,
		symptoms, analysis.Severity, analysis.Analysis)
}

type nonMedicalResponder struct{}

func (nonMedicalResponder) Route() Route { return RouteNonMedical }

func (nonMedicalResponder) Render(sessionID, symptoms string, analysis *reasoning.AnalysisResult) string {
	return `I'm a medical triage assistant designed to help with health symptoms and concerns.

Please describe your medical symptoms, such as:
- Pain, discomfort, or unusual sensations
- Changes in how you feel physically
- Health concerns or symptoms you're experiencing

Examples: 'I have chest pain', 'headache for 3 days', 'fever and cough'

If you need help with non-medical questions, please consult other resources.`
}
