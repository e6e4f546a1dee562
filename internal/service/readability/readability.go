// Package readability scores how easy a text is to read. Classic formulas
// (Flesch, Dale-Chall, grade-level indexes) are computed over the raw text;
// a composite in [0,1] weighs reading ease, vocabulary familiarity and
// sentence length. An optional audience tag adjusts the score for the
// intended readership.
package readability

import (
	"context"
	"log/slog"

	"github.com/textrefine/refinescore/internal/cache"
	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/textproc"
)

// Composite weights over the normalized inputs: reading ease dominates,
// vocabulary familiarity and sentence length share the rest.
const (
	weightReadingEase    = 0.6
	weightDaleChall      = 0.2
	weightSentenceLength = 0.2
)

// Analyzer produces readability results, memoized by content hash and
// audience tag.
type Analyzer struct {
	cache  *cache.Cache[model.ReadabilityResult]
	logger *slog.Logger
}

// New returns a readability analyzer.
func New(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		cache:  cache.MustNew[model.ReadabilityResult](cache.DefaultSize),
		logger: logger,
	}
}

// Analyze scores the text, optionally adjusted for an audience.
func (a *Analyzer) Analyze(ctx context.Context, text string, audience model.Audience) model.ReadabilityResult {
	key, cacheable := cache.Key(text, string(audience))
	if cacheable {
		if result, ok := a.cache.Get(key); ok {
			a.logger.Debug("readability cache hit")
			return result
		}
	}

	result := Score(text, audience)
	if cacheable {
		a.cache.Add(key, result)
	}
	return result
}

// Score computes the readability result for text. When audience is non-empty
// the audience-fit fields are populated; the raw composite score is always
// preserved.
func Score(text string, audience model.Audience) model.ReadabilityResult {
	counts := textproc.Count(text)
	if counts.Words == 0 {
		return emptyResult()
	}

	fre := clamp(textproc.FleschReadingEase(counts), 0, 100)
	fkGrade := clamp(textproc.FleschKincaidGrade(counts), 0, 20)
	smog := clamp(textproc.SMOGIndex(counts), 0, 20)
	fog := clamp(textproc.GunningFog(counts), 0, 20)
	ari := clamp(textproc.AutomatedReadabilityIndex(counts), 0, 20)
	colemanLiau := clamp(textproc.ColemanLiauIndex(counts), 0, 20)
	daleChall := clamp(textproc.DaleChallScore(counts), 0, 10)
	avgSentence := textproc.AvgWordsPerSentence(counts)

	avgGrade := (fkGrade + smog + fog + ari + colemanLiau) / 5
	issues, suggestions := diagnose(fre, avgGrade, daleChall)
	score := composite(fre, daleChall, avgSentence)

	result := model.ReadabilityResult{
		FleschReadingEase:         model.Round(fre, 4),
		FleschKincaidGrade:        model.Round(fkGrade, 4),
		SMOGIndex:                 model.Round(smog, 4),
		GunningFog:                model.Round(fog, 4),
		AutomatedReadabilityIndex: model.Round(ari, 4),
		ColemanLiauIndex:          model.Round(colemanLiau, 4),
		DaleChallScore:            model.Round(daleChall, 4),
		AvgWordsPerSentence:       model.Round(avgSentence, 4),
		EstimatedReadingTime:      textproc.ReadingTimeSeconds(counts),
		Score:                     model.Round(score, 4),
		FleschReadingEaseLevel:    model.ReadingEaseLevel(fre),
		OverallGradeLevel:         model.EducationLevel(avgGrade),
		Issues:                    issues,
		Suggestions:               suggestions,
	}

	if audience != "" {
		fit := audienceFit(score, daleChall, audience)
		adjusted := model.Round(fit.adjusted, 4)
		result.Audience = audience
		result.AudienceAppropriate = &fit.appropriate
		result.AudienceAdjustedScore = &adjusted
		result.AudienceIssues = fit.issues
	}
	return result
}

// composite folds the three normalized inputs into [0,1], higher is better.
// Very hard texts (Flesch below 30) take an extra difficulty penalty so the
// 1.2 boost cannot mask them.
func composite(fre, daleChall, avgSentence float64) float64 {
	freN := fre / 100
	dcN := 1 - max(0, daleChall-4.9)/(10-4.9)
	slN := normalizeSentenceLength(avgSentence)

	score := min(1, 1.2*(weightReadingEase*freN+weightDaleChall*dcN+weightSentenceLength*slN))
	if fre < 30 {
		score -= 0.2 * (1 - fre/30)
		score = max(score, 0.1)
	}
	return score
}

// normalizeSentenceLength maps mean sentence length onto [0.1, 1]: texts
// averaging 15 words or fewer per sentence score 1.0, then the score falls
// off at 0.1 per word up to 25 words and 0.05 per word beyond, never below
// the 0.1 floor.
func normalizeSentenceLength(avg float64) float64 {
	sl := 1.0
	switch {
	case avg > 25:
		sl = 1.0 - 0.1*10 - 0.05*(avg-25)
	case avg > 15:
		sl = 1.0 - 0.1*(avg-15)
	}
	return max(sl, 0.1)
}

// diagnose flags readability problems worth surfacing to the writer.
func diagnose(fre, avgGrade, daleChall float64) (issues, suggestions []string) {
	issues = []string{}
	suggestions = []string{}

	switch {
	case fre < 30:
		issues = append(issues, "Very difficult to read")
		suggestions = append(suggestions, "The text is very difficult to read. Consider simplifying sentence structure and vocabulary.")
	case fre < 50:
		issues = append(issues, "Difficult to read")
		suggestions = append(suggestions, "The text may be challenging for many readers. Consider simplifying some complex sentences.")
	}

	if avgGrade > 16 {
		issues = append(issues, "Highly specialized language")
		suggestions = append(suggestions, "The text uses highly specialized language suitable for experts. Consider if this level of complexity is necessary for your audience.")
	}

	if daleChall > 8.5 {
		issues = append(issues, "Complex vocabulary")
		suggestions = append(suggestions, "The text contains many words that may be unfamiliar to general readers. Consider using more common alternatives where possible.")
	}

	return issues, suggestions
}

func emptyResult() model.ReadabilityResult {
	return model.ReadabilityResult{
		FleschReadingEaseLevel: model.ReadingEaseLevel(0),
		OverallGradeLevel:      model.EducationLevel(0),
		Issues:                 []string{"Empty text provided"},
		Suggestions:            []string{"Provide some text to analyze"},
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
