package refinescore

import "time"

// Category is the normalized category of a grammar issue. The set is closed;
// the engine maps every upstream category into it.
type Category string

const (
	CategoryGrammarRules    Category = "GRAMMAR_RULES"
	CategoryMechanics       Category = "MECHANICS"
	CategorySpellingTyping  Category = "SPELLING_TYPING"
	CategoryWordUsage       Category = "WORD_USAGE"
	CategoryMeaningLogic    Category = "MEANING_LOGIC"
	CategoryStylisticIssues Category = "STYLISTIC_ISSUES"
	CategoryContextualStyle Category = "CONTEXTUAL_STYLE"
)

// Issue is a single problem found in a text by the grammar engine.
// It is a curated view of the internal issue model for use in extension
// interfaces. No internal package imports; safe to use from outside the module.
type Issue struct {
	Message      string
	Replacements []string
	// ErrorText is the offending substring of the checked text.
	ErrorText string
	// StartOffset and EndOffset are rune positions in the checked text.
	StartOffset int
	EndOffset   int
	Category    Category
	// RuleIssueType is the engine's own issue type tag (misspelling,
	// grammar, style, ...). Informational; scoring uses Category.
	RuleIssueType string
}

// Evaluation is the public representation of one scored text, delivered to
// ScoreHook implementations after each successful evaluation.
type Evaluation struct {
	// The request as received.
	Text     string
	Topic    string
	Audience string

	// Score is the weighted composite in [0.0, 1.0]; ScoreInPercent is the
	// same value scaled to [0, 100].
	Score          float64
	ScoreInPercent float64

	// Component scores, each in [0.0, 1.0].
	CorrectnessScore float64
	VocabularyScore  float64
	ReadabilityScore float64
	// CoherenceScore is nil when the coherence analyzer is not configured.
	CoherenceScore *float64

	WordCount int
	// ReadingLevel is the qualitative Flesch Reading Ease band
	// ("Standard", "Difficult to read", ...).
	ReadingLevel string
	// Issues are the grammar findings, ordered by position in the text.
	Issues []Issue

	ScoredAt time.Time
}
