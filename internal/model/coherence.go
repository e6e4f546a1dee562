package model

// CoherenceResult is the outcome of the LLM coherence analysis. Score is
// TextCoherence when no topic was given, otherwise 0.3*TextCoherence +
// 0.7*TopicCoherence. TopicCoherence is null when no topic was given.
// Confidence is advisory: the model self-reports it and scores are not
// bit-stable across model versions.
type CoherenceResult struct {
	Score          float64  `json:"score"`
	TextCoherence  float64  `json:"text_coherence"`
	TopicCoherence *float64 `json:"topic_coherence"`
	Feedback       string   `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
	Confidence     float64  `json:"confidence"`
}
