package model

import "strings"

// IssueCategory is the normalized category of a text issue. The set is
// closed; every upstream grammar-engine category maps into it.
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

// Label returns the human-readable name of the category.
func (c IssueCategory) Label() string {
	switch c {
	case CategoryGrammarRules:
		return "Grammar Rules"
	case CategoryMechanics:
		return "Mechanics"
	case CategorySpellingTyping:
		return "Spelling & Typos"
	case CategoryWordUsage:
		return "Word Usage"
	case CategoryMeaningLogic:
		return "Meaning & Logic"
	case CategoryStylisticIssues:
		return "Stylistic Issues"
	case CategoryContextualStyle:
		return "Contextual Style"
	default:
		return string(c)
	}
}

// Severity returns the penalty weight of the category, 1 (low impact)
// to 5 (high impact).
func (c IssueCategory) Severity() int {
	switch c {
	case CategoryGrammarRules:
		return 4
	case CategoryMechanics:
		return 2
	case CategorySpellingTyping:
		return 2
	case CategoryWordUsage:
		return 3
	case CategoryMeaningLogic:
		return 5
	case CategoryStylisticIssues:
		return 2
	case CategoryContextualStyle:
		return 1
	default:
		return 0
	}
}

// languageToolCategories maps upstream LanguageTool category IDs to the
// normalized set. IDs not listed here fall through to STYLISTIC_ISSUES.
var languageToolCategories = map[string]IssueCategory{
	"GRAMMAR":           CategoryGrammarRules,
	"CASING":            CategoryGrammarRules,
	"PUNCTUATION":       CategoryMechanics,
	"TYPOGRAPHY":        CategoryMechanics,
	"COMPOUNDING":       CategoryMechanics,
	"TYPOS":             CategorySpellingTyping,
	"CONFUSED_WORDS":    CategoryWordUsage,
	"COLLOQUIALISMS":    CategoryWordUsage,
	"REDUNDANCY":        CategoryWordUsage,
	"FALSE_FRIENDS":     CategoryMeaningLogic,
	"REGIONALISMS":      CategoryMeaningLogic,
	"STYLE":             CategoryStylisticIssues,
	"REPETITIONS_STYLE": CategoryStylisticIssues,
	"REPETITIONS":       CategoryStylisticIssues,
	"PLAIN_ENGLISH":     CategoryStylisticIssues,
	"MISC":              CategoryStylisticIssues,
	"WIKIPEDIA":         CategoryContextualStyle,
	"GENDER_NEUTRALITY": CategoryContextualStyle,
}

// CategoryFromLanguageTool normalizes an upstream category ID. Matching is
// case-insensitive; unknown IDs map to STYLISTIC_ISSUES.
func CategoryFromLanguageTool(id string) IssueCategory {
	if c, ok := languageToolCategories[strings.ToUpper(id)]; ok {
		return c
	}
	return CategoryStylisticIssues
}
