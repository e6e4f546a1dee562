package readability

import (
	"fmt"

	"github.com/textrefine/refinescore/internal/model"
)

// gradeWindow is the school-grade range an audience reads comfortably.
type gradeWindow struct {
	min, max float64
}

func (w gradeWindow) midpoint() float64 {
	return (w.min + w.max) / 2
}

var audienceWindows = map[model.Audience]gradeWindow{
	model.AudienceChildren:     {1, 5},
	model.AudienceTeenagers:    {5, 9},
	model.AudienceYoungAdults:  {8, 12},
	model.AudienceGeneral:      {6, 12},
	model.AudienceBusiness:     {8, 14},
	model.AudienceProfessional: {10, 16},
	model.AudienceAcademic:     {12, 18},
}

// complexityBonus rewards professional and academic audiences for reading
// material that leans toward the demanding end of their window.
const complexityBonus = 0.05

type fitResult struct {
	appropriate bool
	adjusted    float64
	issues      []string
}

// audienceFit compares the text's approximate grade against the audience's
// window. A mismatch applies a distance-scaled penalty capped at 0.3; a
// match preserves the score, with a small bonus for expert audiences when
// the grade reaches the upper half of their window.
func audienceFit(score, daleChall float64, audience model.Audience) fitResult {
	window := audienceWindows[audience]
	grade := gradeFromDaleChall(daleChall)

	switch {
	case grade < window.min:
		distance := window.min - grade
		return fitResult{
			appropriate: false,
			adjusted:    clamp01(score - min(0.3, 0.1*distance)),
			issues: []string{fmt.Sprintf(
				"Text is likely too simple for a %s audience (grade %.0f, expected %.0f-%.0f)",
				audience, grade, window.min, window.max)},
		}
	case grade > window.max:
		distance := grade - window.max
		return fitResult{
			appropriate: false,
			adjusted:    clamp01(score - min(0.3, 0.1*distance)),
			issues: []string{fmt.Sprintf(
				"Text is likely too complex for a %s audience (grade %.0f, expected %.0f-%.0f)",
				audience, grade, window.min, window.max)},
		}
	default:
		bonus := 0.0
		if expertAudience(audience) && grade >= window.midpoint() {
			bonus = complexityBonus
		}
		return fitResult{
			appropriate: true,
			adjusted:    clamp01(score + bonus),
			issues:      []string{},
		}
	}
}

func expertAudience(a model.Audience) bool {
	return a == model.AudienceProfessional || a == model.AudienceAcademic
}

// gradeFromDaleChall approximates a U.S. school grade from the Dale-Chall
// score using the conventional banding of the formula.
func gradeFromDaleChall(dc float64) float64 {
	switch {
	case dc <= 4.9:
		return 4
	case dc < 6:
		return 6
	case dc < 7:
		return 8
	case dc < 8:
		return 10
	case dc < 9:
		return 12
	case dc < 10:
		return 14
	default:
		return 16
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
