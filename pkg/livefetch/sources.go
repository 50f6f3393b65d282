package livefetch

import "strings"

// source describes one trusted upstream: how to build a condition URL
// from a cleaned symptom slug, which selectors carry the guidance text,
// and the fixed trust score assigned to fresh content from it.
type source struct {
	name      string
	slug      string
	score     float64
	selectors []string
	buildURL  func(cleanSymptom string) string
}

var sources = []source{
	{
		name:  "NHS",
		slug:  "nhs",
		score: 0.95,
		selectors: []string{
			".nhsuk-care-card, .nhsuk-warning-callout",
			"main p, .nhsuk-body-l, .nhsuk-list li",
		},
		buildURL: buildNHSURL,
	},
	{
		name:  "Mayo Clinic",
		slug:  "mayo",
		score: 0.92,
		selectors: []string{
			".symptoms, .causes, .when-to-see-doctor, .content",
			"main p, .content p",
		},
		buildURL: buildMayoURL,
	},
	{
		name:  "MedlinePlus",
		slug:  "medlineplus",
		score: 0.90,
		selectors: []string{
			".health-summary, .page-info, .section",
			"main p, .content p",
		},
		buildURL: buildMedlinePlusURL,
	},
}

func buildNHSURL(clean string) string {
	switch {
	case strings.Contains(clean, "chest-pain"):
		return "https://www.nhs.uk/conditions/chest-pain/"
	case strings.Contains(clean, "vomiting"), strings.Contains(clean, "nausea"):
		return "https://www.nhs.uk/conditions/vomiting-adults/"
	case strings.Contains(clean, "back-pain"):
		return "https://www.nhs.uk/conditions/back-pain/"
	case strings.Contains(clean, "headache"):
		return "https://www.nhs.uk/conditions/headaches/"
	case strings.Contains(clean, "diarrhea"), strings.Contains(clean, "stomach"):
		return "https://www.nhs.uk/conditions/diarrhoea-and-vomiting/"
	case strings.Contains(clean, "breathing"), strings.Contains(clean, "shortness"):
		return "https://www.nhs.uk/conditions/shortness-of-breath/"
	default:
		return "https://www.nhs.uk/conditions/" + clean + "/"
	}
}

func buildMayoURL(clean string) string {
	switch {
	case strings.Contains(clean, "chest-pain"):
		return "https://www.mayoclinic.org/diseases-conditions/chest-pain/symptoms-causes/syc-20370838"
	case strings.Contains(clean, "vomiting"):
		return "https://www.mayoclinic.org/symptoms/vomiting/basics/definition/sym-20050942"
	case strings.Contains(clean, "back-pain"):
		return "https://www.mayoclinic.org/diseases-conditions/back-pain/symptoms-causes/syc-20369906"
	case strings.Contains(clean, "headache"):
		return "https://www.mayoclinic.org/diseases-conditions/headaches/symptoms-causes/syc-20377913"
	default:
		return "https://www.mayoclinic.org/diseases-conditions/" + clean
	}
}

func buildMedlinePlusURL(clean string) string {
	switch {
	case strings.Contains(clean, "chest"), strings.Contains(clean, "heart"):
		return "https://medlineplus.gov/chestpain.html"
	case strings.Contains(clean, "vomiting"), strings.Contains(clean, "nausea"):
		return "https://medlineplus.gov/nauseaandvomiting.html"
	case strings.Contains(clean, "back"):
		return "https://medlineplus.gov/backpain.html"
	case strings.Contains(clean, "headache"):
		return "https://medlineplus.gov/headache.html"
	default:
		return "https://medlineplus.gov/healthtopics.html"
	}
}
