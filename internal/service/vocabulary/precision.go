package vocabulary

import (
	"slices"

	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/textproc"
)

// precisionCategories are the issue categories that indicate imprecise word
// choice rather than mechanical errors.
var precisionCategories = map[model.IssueCategory]bool{
	model.CategoryWordUsage:       true,
	model.CategoryStylisticIssues: true,
}

// Precision scores word-choice accuracy from the precision-relevant subset
// of the correctness issues. The summed severity is normalized by the
// alphabetic token count and subtracted from a perfect score.
func Precision(text string, issues []model.TextIssue) model.PrecisionResult {
	relevant := make([]model.TextIssue, 0)
	for _, issue := range issues {
		if precisionCategories[issue.Category] {
			relevant = append(relevant, issue)
		}
	}
	slices.SortStableFunc(relevant, func(a, b model.TextIssue) int {
		return a.StartOffset - b.StartOffset
	})

	penalty := 0
	breakdown := make([]model.CategoryBreakdown, 0)
	position := make(map[model.IssueCategory]int)
	for _, issue := range relevant {
		penalty += issue.Penalty
		i, seen := position[issue.Category]
		if !seen {
			i = len(breakdown)
			position[issue.Category] = i
			breakdown = append(breakdown, model.CategoryBreakdown{Category: issue.Category})
		}
		breakdown[i].Count++
		breakdown[i].Penalty += issue.Penalty
	}

	wordCount := len(textproc.AlphabeticWords(text))
	normalized := float64(penalty) / float64(max(wordCount, 1))

	return model.PrecisionResult{
		Score:             model.Round(max(0, 1-normalized), 4),
		WordCount:         wordCount,
		NormalizedPenalty: model.Round(normalized, 4),
		Issues:            relevant,
		Breakdown:         breakdown,
	}
}
