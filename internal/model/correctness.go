package model

// CorrectnessResult is the outcome of the grammar/correctness analysis.
// Issues are ordered by ascending StartOffset; Breakdown preserves the order
// in which categories were first seen.
type CorrectnessResult struct {
	Score             float64             `json:"score"`
	WordCount         int                 `json:"word_count"`
	NormalizedPenalty float64             `json:"normalized_penalty"`
	Issues            []TextIssue         `json:"issues"`
	Breakdown         []CategoryBreakdown `json:"breakdown"`
}
