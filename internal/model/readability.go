package model

import "fmt"

// Audience identifies the intended readership of a text.
type Audience string

const (
	AudienceChildren     Audience = "children"
	AudienceTeenagers    Audience = "teenagers"
	AudienceYoungAdults  Audience = "young_adults"
	AudienceGeneral      Audience = "general"
	AudienceBusiness     Audience = "business"
	AudienceProfessional Audience = "professional"
	AudienceAcademic     Audience = "academic"
)

// Audiences lists the valid audience tags.
func Audiences() []Audience {
	return []Audience{
		AudienceChildren,
		AudienceTeenagers,
		AudienceYoungAdults,
		AudienceGeneral,
		AudienceBusiness,
		AudienceProfessional,
		AudienceAcademic,
	}
}

// ParseAudience validates a raw audience tag. The empty string is valid and
// means no audience targeting.
func ParseAudience(raw string) (Audience, error) {
	if raw == "" {
		return "", nil
	}
	for _, a := range Audiences() {
		if Audience(raw) == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid audience %q (valid: children, teenagers, young_adults, general, business, professional, academic)", raw)
}

// ReadingEaseLevel interprets a Flesch Reading Ease score.
func ReadingEaseLevel(fre float64) string {
	switch {
	case fre >= 90:
		return "Very Easy to read"
	case fre >= 80:
		return "Easy to read"
	case fre >= 70:
		return "Fairly Easy to read"
	case fre >= 60:
		return "Standard"
	case fre >= 50:
		return "Fairly Difficult to read"
	case fre >= 30:
		return "Difficult to read"
	default:
		return "Very Confusing to read"
	}
}

// EducationLevel interprets a grade level as the schooling needed to follow
// the text comfortably.
func EducationLevel(grade float64) string {
	switch {
	case grade <= 6:
		return "Basic Literacy (Elementary School)"
	case grade <= 8:
		return "General Public (Middle School)"
	case grade <= 10:
		return "High School Level"
	case grade <= 12:
		return "High School Graduate"
	case grade <= 14:
		return "College Level"
	case grade <= 18:
		return "Graduate Level"
	default:
		return "Professional / Academic"
	}
}

// ReadabilityResult is the outcome of the readability analysis. The five
// grade metrics are reported but only Flesch Reading Ease, Dale-Chall and
// sentence length feed the composite score. Audience fields are present only
// when an audience tag was supplied.
type ReadabilityResult struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	SMOGIndex                 float64 `json:"smog_index"`
	GunningFog                float64 `json:"gunning_fog"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
	ColemanLiauIndex          float64 `json:"coleman_liau_index"`
	DaleChallScore            float64 `json:"dale_chall_score"`
	AvgWordsPerSentence       float64 `json:"avg_words_per_sentence"`
	EstimatedReadingTime      int     `json:"estimated_reading_time"`

	Score float64 `json:"score"`

	FleschReadingEaseLevel string `json:"flesch_reading_ease_level"`
	OverallGradeLevel      string `json:"overall_grade_level"`

	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`

	Audience              Audience `json:"audience,omitempty"`
	AudienceAppropriate   *bool    `json:"audience_appropriate,omitempty"`
	AudienceAdjustedScore *float64 `json:"audience_adjusted_score,omitempty"`
	AudienceIssues        []string `json:"audience_issues,omitempty"`
}
