package textproc

import (
	"math"
	"unicode"
)

// Counts holds the raw tallies the readability formulas consume. Compute
// once per text with Count and feed to the individual formulas.
type Counts struct {
	Sentences      int
	Words          int
	Syllables      int
	Polysyllables  int // words with three or more syllables
	Letters        int // letters and digits inside word tokens
	DifficultWords int // words outside the Dale-Chall familiar list
}

// Count tallies the text in a single pass over its tokens.
func Count(text string) Counts {
	words := Words(text)
	c := Counts{
		Words:     len(words),
		Sentences: len(Sentences(text)),
	}
	for _, w := range words {
		syl := Syllables(w)
		c.Syllables += syl
		if syl >= 3 {
			c.Polysyllables++
		}
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				c.Letters++
			}
		}
		if !IsFamiliar(w) {
			c.DifficultWords++
		}
	}
	return c
}

// AvgWordsPerSentence returns the mean sentence length in words.
func AvgWordsPerSentence(c Counts) float64 {
	if c.Sentences == 0 {
		return 0
	}
	return float64(c.Words) / float64(c.Sentences)
}

// FleschReadingEase computes the classical 0-100 ease score
// (206.835 - 1.015*ASL - 84.6*ASW). Uncapped; callers clamp.
func FleschReadingEase(c Counts) float64 {
	if c.Sentences == 0 || c.Words == 0 {
		return 0
	}
	asl := float64(c.Words) / float64(c.Sentences)
	asw := float64(c.Syllables) / float64(c.Words)
	return 206.835 - 1.015*asl - 84.6*asw
}

// FleschKincaidGrade computes the US grade level variant of Flesch.
func FleschKincaidGrade(c Counts) float64 {
	if c.Sentences == 0 || c.Words == 0 {
		return 0
	}
	asl := float64(c.Words) / float64(c.Sentences)
	asw := float64(c.Syllables) / float64(c.Words)
	return 0.39*asl + 11.8*asw - 15.59
}

// SMOGIndex computes the Simple Measure of Gobbledygook grade. The formula
// is calibrated on 30-sentence samples; below three sentences it returns 0.
func SMOGIndex(c Counts) float64 {
	if c.Sentences < 3 {
		return 0
	}
	return 1.0430*math.Sqrt(float64(c.Polysyllables)*30/float64(c.Sentences)) + 3.1291
}

// GunningFog computes the Gunning Fog grade using polysyllabic words as the
// complex-word count.
func GunningFog(c Counts) float64 {
	if c.Sentences == 0 || c.Words == 0 {
		return 0
	}
	asl := float64(c.Words) / float64(c.Sentences)
	complexRatio := float64(c.Polysyllables) / float64(c.Words)
	return 0.4 * (asl + 100*complexRatio)
}

// AutomatedReadabilityIndex computes ARI from character and word counts.
func AutomatedReadabilityIndex(c Counts) float64 {
	if c.Sentences == 0 || c.Words == 0 {
		return 0
	}
	cw := float64(c.Letters) / float64(c.Words)
	ws := float64(c.Words) / float64(c.Sentences)
	return 4.71*cw + 0.5*ws - 21.43
}

// ColemanLiauIndex computes the Coleman-Liau grade from per-100-word letter
// and sentence densities.
func ColemanLiauIndex(c Counts) float64 {
	if c.Words == 0 {
		return 0
	}
	l := float64(c.Letters) / float64(c.Words) * 100
	s := float64(c.Sentences) / float64(c.Words) * 100
	return 0.0588*l - 0.296*s - 15.8
}

// DaleChallScore computes the Dale-Chall readability score on its 0-10
// scale. Texts with more than 5% unfamiliar words get the 3.6365 constant.
func DaleChallScore(c Counts) float64 {
	if c.Sentences == 0 || c.Words == 0 {
		return 0
	}
	pctDifficult := 100 * float64(c.DifficultWords) / float64(c.Words)
	asl := float64(c.Words) / float64(c.Sentences)
	score := 0.1579*pctDifficult + 0.0496*asl
	if pctDifficult > 5 {
		score += 3.6365
	}
	return score
}

// readingWPM is the assumed silent-reading speed for time estimates.
const readingWPM = 200

// ReadingTimeSeconds estimates reading time at readingWPM, rounded up to a
// whole second.
func ReadingTimeSeconds(c Counts) int {
	if c.Words == 0 {
		return 0
	}
	return int(math.Ceil(float64(c.Words) / readingWPM * 60))
}
