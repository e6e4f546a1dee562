package refinescore

// EvaluationRequest is the input for Client.Evaluate. Topic steers the
// coherence analysis; Audience steers the readability audience fit. Both
// are optional.
type EvaluationRequest struct {
	Text     string `json:"text"`
	Topic    string `json:"topic,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// Valid audience tags for EvaluationRequest.Audience.
const (
	AudienceChildren     = "children"
	AudienceTeenagers    = "teenagers"
	AudienceYoungAdults  = "young_adults"
	AudienceGeneral      = "general"
	AudienceBusiness     = "business"
	AudienceProfessional = "professional"
	AudienceAcademic     = "academic"
)

// GlobalScore mirrors the server's aggregate evaluation for API consumers.
// Coherence is nil when the server has no coherence analyzer configured;
// the composite then tops out below 1.0.
type GlobalScore struct {
	Score          float64           `json:"score"`
	ScoreInPercent float64           `json:"score_in_percent"`
	Correctness    CorrectnessResult `json:"correctness"`
	Vocabulary     VocabularyResult  `json:"vocabulary"`
	Readability    ReadabilityResult `json:"readability"`
	Coherence      *CoherenceResult  `json:"coherence"`
}

// IssueCategory classifies a text issue.
type IssueCategory string

const (
	CategoryGrammarRules    IssueCategory = "GRAMMAR_RULES"
	CategoryMechanics       IssueCategory = "MECHANICS"
	CategorySpellingTyping  IssueCategory = "SPELLING_TYPING"
	CategoryWordUsage       IssueCategory = "WORD_USAGE"
	CategoryMeaningLogic    IssueCategory = "MEANING_LOGIC"
	CategoryStylisticIssues IssueCategory = "STYLISTIC_ISSUES"
	CategoryContextualStyle IssueCategory = "CONTEXTUAL_STYLE"
)

// TextIssue is a single issue found in the text. Offsets are rune positions
// into the submitted text.
type TextIssue struct {
	Message       string        `json:"message"`
	Replacements  []string      `json:"replacements"`
	ErrorText     string        `json:"error_text"`
	ErrorLength   int           `json:"error_length"`
	StartOffset   int           `json:"start_offset"`
	EndOffset     int           `json:"end_offset"`
	Category      IssueCategory `json:"category"`
	RuleIssueType string        `json:"rule_issue_type"`
	Penalty       int           `json:"penalty"`
}

// CategoryBreakdown aggregates the issues of one category.
type CategoryBreakdown struct {
	Category IssueCategory `json:"category"`
	Count    int           `json:"count"`
	Penalty  int           `json:"penalty"`
}

// CorrectnessResult is the outcome of the grammar/correctness analysis.
type CorrectnessResult struct {
	Score             float64             `json:"score"`
	WordCount         int                 `json:"word_count"`
	NormalizedPenalty float64             `json:"normalized_penalty"`
	Issues            []TextIssue         `json:"issues"`
	Breakdown         []CategoryBreakdown `json:"breakdown"`
}

// LexicalDiversityResult reports the type-token ratio of the text.
type LexicalDiversityResult struct {
	TTR         float64 `json:"ttr"`
	WordCount   int     `json:"word_count"`
	UniqueCount int     `json:"unique_count"`
}

// SophisticationBreakdown lists the analyzed words per frequency band.
type SophisticationBreakdown struct {
	Common  []string `json:"common"`
	Mid     []string `json:"mid"`
	Rare    []string `json:"rare"`
	Unknown []string `json:"unknown"`
}

// SophisticationResult reports vocabulary sophistication by word frequency.
type SophisticationResult struct {
	Score        float64                 `json:"score"`
	WordCount    int                     `json:"word_count"`
	CommonCount  int                     `json:"common_count"`
	MidCount     int                     `json:"mid_count"`
	RareCount    int                     `json:"rare_count"`
	UnknownCount int                     `json:"unknown_count"`
	Level        string                  `json:"level"`
	Breakdown    SophisticationBreakdown `json:"breakdown"`
}

// PrecisionResult reports word-choice precision derived from the
// precision-relevant issue categories.
type PrecisionResult struct {
	Score             float64             `json:"score"`
	WordCount         int                 `json:"word_count"`
	NormalizedPenalty float64             `json:"normalized_penalty"`
	Issues            []TextIssue         `json:"issues"`
	Breakdown         []CategoryBreakdown `json:"breakdown"`
}

// VocabularyResult combines lexical diversity, sophistication and precision.
type VocabularyResult struct {
	Score            float64                `json:"score"`
	Sophistication   SophisticationResult   `json:"sophistication"`
	Precision        PrecisionResult        `json:"precision"`
	LexicalDiversity LexicalDiversityResult `json:"lexical_diversity"`
}

// ReadabilityResult is the outcome of the readability analysis. The audience
// fields are present only when an audience tag was supplied in the request.
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

	Audience              string   `json:"audience,omitempty"`
	AudienceAppropriate   *bool    `json:"audience_appropriate,omitempty"`
	AudienceAdjustedScore *float64 `json:"audience_adjusted_score,omitempty"`
	AudienceIssues        []string `json:"audience_issues,omitempty"`
}

// CoherenceResult is the outcome of the LLM coherence analysis.
// TopicCoherence is nil when no topic was given.
type CoherenceResult struct {
	Score          float64  `json:"score"`
	TextCoherence  float64  `json:"text_coherence"`
	TopicCoherence *float64 `json:"topic_coherence"`
	Feedback       string   `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
	Confidence     float64  `json:"confidence"`
}

// HealthResponse is the server's health probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
