package model

// SophisticationLevel is the qualitative band of a sophistication score.
// Serialized as its display string.
type SophisticationLevel string

const (
	LevelBasic          SophisticationLevel = "Basic Vocabulary"
	LevelConversational SophisticationLevel = "Conversational Range"
	LevelAcademic       SophisticationLevel = "Academic Range"
	LevelAdvanced       SophisticationLevel = "Advanced Vocabulary"
	LevelErudite        SophisticationLevel = "Erudite and Specialized"
)

// SophisticationLevelFor maps a sophistication score to its band.
func SophisticationLevelFor(score float64) SophisticationLevel {
	switch {
	case score < 0.2:
		return LevelBasic
	case score < 0.45:
		return LevelConversational
	case score < 0.6:
		return LevelAcademic
	case score < 0.95:
		return LevelAdvanced
	default:
		return LevelErudite
	}
}

// LexicalDiversityResult reports the type-token ratio of the text.
// Invariant: UniqueCount <= WordCount; TTR = UniqueCount/WordCount when
// WordCount > 0, else 0.
type LexicalDiversityResult struct {
	TTR         float64 `json:"ttr"`
	WordCount   int     `json:"word_count"`
	UniqueCount int     `json:"unique_count"`
}

// SophisticationBreakdown lists the analyzed words per frequency band,
// after any replacement substitution from the correctness issues.
type SophisticationBreakdown struct {
	Common  []string `json:"common"`
	Mid     []string `json:"mid"`
	Rare    []string `json:"rare"`
	Unknown []string `json:"unknown"`
}

// SophisticationResult reports vocabulary sophistication by word frequency.
// Invariant: CommonCount + MidCount + RareCount + UnknownCount = WordCount.
type SophisticationResult struct {
	Score        float64                 `json:"score"`
	WordCount    int                     `json:"word_count"`
	CommonCount  int                     `json:"common_count"`
	MidCount     int                     `json:"mid_count"`
	RareCount    int                     `json:"rare_count"`
	UnknownCount int                     `json:"unknown_count"`
	Level        SophisticationLevel     `json:"level"`
	Breakdown    SophisticationBreakdown `json:"breakdown"`
}

// PrecisionResult reports word-choice precision derived from the
// precision-relevant correctness issues (WORD_USAGE, STYLISTIC_ISSUES).
type PrecisionResult struct {
	Score             float64             `json:"score"`
	WordCount         int                 `json:"word_count"`
	NormalizedPenalty float64             `json:"normalized_penalty"`
	Issues            []TextIssue         `json:"issues"`
	Breakdown         []CategoryBreakdown `json:"breakdown"`
}

// VocabularyResult combines lexical diversity, sophistication and precision
// into a single vocabulary score.
type VocabularyResult struct {
	Score            float64                `json:"score"`
	Sophistication   SophisticationResult   `json:"sophistication"`
	Precision        PrecisionResult        `json:"precision"`
	LexicalDiversity LexicalDiversityResult `json:"lexical_diversity"`
}
