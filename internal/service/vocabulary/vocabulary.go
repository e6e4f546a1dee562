// Package vocabulary scores the richness of a text's word choice along
// three axes: lexical diversity (type-token ratio), sophistication (word
// frequency bands) and precision (usage issues from the grammar engine).
package vocabulary

import (
	"context"
	"log/slog"

	"github.com/textrefine/refinescore/internal/cache"
	"github.com/textrefine/refinescore/internal/model"
)

// Sub-score weights of the vocabulary composite.
const (
	weightDiversity      = 0.30
	weightSophistication = 0.35
	weightPrecision      = 0.35
)

// Analyzer produces vocabulary results. It consumes the issue list already
// produced by the correctness analyzer, so it never calls upstream itself.
type Analyzer struct {
	method Method
	cache  *cache.Cache[model.VocabularyResult]
	logger *slog.Logger
}

// New returns an analyzer using the given sophistication method.
func New(method Method, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		method: method,
		cache:  cache.MustNew[model.VocabularyResult](cache.DefaultSize),
		logger: logger,
	}
}

// Analyze scores the text's vocabulary. The issues parameter is the
// correctness issue list; it feeds both typo substitution in the
// sophistication scorer and the precision sub-score.
func (a *Analyzer) Analyze(ctx context.Context, text string, issues []model.TextIssue) model.VocabularyResult {
	key, cacheable := cache.Key(text)
	if cacheable {
		if result, ok := a.cache.Get(key); ok {
			a.logger.Debug("vocabulary cache hit")
			return result
		}
	}

	diversity := Diversity(text)
	sophistication := Sophistication(text, issues, a.method)
	precision := Precision(text, issues)

	score := weightDiversity*diversity.TTR +
		weightSophistication*sophistication.Score +
		weightPrecision*precision.Score

	result := model.VocabularyResult{
		Score:            model.Round(score, 3),
		Sophistication:   sophistication,
		Precision:        precision,
		LexicalDiversity: diversity,
	}
	if cacheable {
		a.cache.Add(key, result)
	}
	return result
}
