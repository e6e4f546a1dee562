package model

// TextIssue is a single issue found in a text. EndOffset and Penalty are
// derived at construction: EndOffset = StartOffset + ErrorLength, Penalty =
// Category.Severity(). They are stored so the serialized form carries them.
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

// MaxReplacements is the number of suggested replacements retained per issue.
const MaxReplacements = 3

// CategoryBreakdown aggregates the issues of one category.
type CategoryBreakdown struct {
	Category IssueCategory `json:"category"`
	Count    int           `json:"count"`
	Penalty  int           `json:"penalty"`
}
