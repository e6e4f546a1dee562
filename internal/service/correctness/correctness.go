// Package correctness scores grammatical correctness. Issues found by an
// upstream grammar engine are severity-weighted and normalized by text
// length, so longer texts are not penalized for their word count.
package correctness

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/textrefine/refinescore/internal/cache"
	"github.com/textrefine/refinescore/internal/model"
)

// Checker finds issues in a text. The production implementation is the
// LanguageTool HTTP client; tests substitute stubs.
type Checker interface {
	Check(ctx context.Context, text string) ([]model.TextIssue, error)
}

// Analyzer produces correctness results, memoizing successful analyses by
// content hash so repeated texts hit the grammar engine at most once.
type Analyzer struct {
	checker Checker
	cache   *cache.Cache[model.CorrectnessResult]
	logger  *slog.Logger
}

// New returns an analyzer backed by checker.
func New(checker Checker, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		checker: checker,
		cache:   cache.MustNew[model.CorrectnessResult](cache.DefaultSize),
		logger:  logger,
	}
}

// Analyze checks text against the grammar engine and scores the findings.
// Failures are returned unwrapped so callers can map the engine's sentinel
// errors onto transport statuses; failed analyses are never cached.
func (a *Analyzer) Analyze(ctx context.Context, text string) (model.CorrectnessResult, error) {
	if strings.TrimSpace(text) == "" {
		return emptyResult(), nil
	}

	key, cacheable := cache.Key(text)
	if cacheable {
		if result, ok := a.cache.Get(key); ok {
			a.logger.Debug("correctness cache hit")
			return result, nil
		}
	}

	issues, err := a.checker.Check(ctx, text)
	if err != nil {
		return model.CorrectnessResult{}, err
	}

	result := Score(text, issues)
	if cacheable {
		a.cache.Add(key, result)
	}
	return result, nil
}

// Score computes a correctness result from a text and its issues.
//
// Each issue carries the severity of its category as penalty. The total
// penalty is normalized by the whitespace word count, and the score is the
// bounded decreasing transform 1/(1+normalized): a clean text scores 1.0
// and heavily flawed text approaches but never reaches 0.
func Score(text string, issues []model.TextIssue) model.CorrectnessResult {
	ordered := append(make([]model.TextIssue, 0, len(issues)), issues...)
	slices.SortStableFunc(ordered, func(a, b model.TextIssue) int {
		return a.StartOffset - b.StartOffset
	})

	totalPenalty := 0
	breakdown := make([]model.CategoryBreakdown, 0)
	position := make(map[model.IssueCategory]int)
	for _, issue := range ordered {
		totalPenalty += issue.Penalty
		i, seen := position[issue.Category]
		if !seen {
			i = len(breakdown)
			position[issue.Category] = i
			breakdown = append(breakdown, model.CategoryBreakdown{Category: issue.Category})
		}
		breakdown[i].Count++
		breakdown[i].Penalty += issue.Penalty
	}

	wordCount := len(strings.Fields(text))
	normalized := float64(totalPenalty) / float64(max(wordCount, 1))

	return model.CorrectnessResult{
		Score:             model.Round(1/(1+normalized), 4),
		WordCount:         wordCount,
		NormalizedPenalty: model.Round(normalized, 4),
		Issues:            ordered,
		Breakdown:         breakdown,
	}
}

func emptyResult() model.CorrectnessResult {
	return model.CorrectnessResult{
		Issues:    []model.TextIssue{},
		Breakdown: []model.CategoryBreakdown{},
	}
}
