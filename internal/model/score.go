package model

import "math"

// GlobalScore is the aggregate evaluation of a text. Coherence is null when
// the coherence analyzer is not configured.
type GlobalScore struct {
	Score          float64           `json:"score"`
	ScoreInPercent float64           `json:"score_in_percent"`
	Correctness    CorrectnessResult `json:"correctness"`
	Vocabulary     VocabularyResult  `json:"vocabulary"`
	Readability    ReadabilityResult `json:"readability"`
	Coherence      *CoherenceResult  `json:"coherence"`
}

// Round rounds v to the given number of decimal places. Every serialized
// score passes through this so identical inputs produce identical JSON.
func Round(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}
