package negotiation

import "strings"

// Personality is the vendor's negotiation temperament, classified once
// per turn from the level's free-text personality description.
type Personality int

const (
	PersonalityDefault Personality = iota
	PersonalityEager
	PersonalityStubborn
	PersonalityPatient
)

func (p Personality) String() string {
	switch p {
	case PersonalityEager:
		return "eager"
	case PersonalityStubborn:
		return "stubborn"
	case PersonalityPatient:
		return "patient"
	default:
		return "default"
	}
}

var (
	eagerKeywords    = []string{"eager", "need", "desperate"}
	stubbornKeywords = []string{"stubborn", "firm", "confident"}
	patientKeywords  = []string{"patient", "kind", "helpful"}
)

// ClassifyPersonality matches the personality text against the keyword
// sets. When a description matches more than one set, eager wins over
// stubborn, and stubborn over patient.
func ClassifyPersonality(text string) Personality {
	lower := strings.ToLower(text)
	if containsAny(lower, eagerKeywords) {
		return PersonalityEager
	}
	if containsAny(lower, stubbornKeywords) {
		return PersonalityStubborn
	}
	if containsAny(lower, patientKeywords) {
		return PersonalityPatient
	}
	return PersonalityDefault
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
