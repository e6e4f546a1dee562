// Package evaluation orchestrates the scoring pipeline: it gates the input,
// fans the analyzers out per request and folds their results into the
// global score.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/telemetry"
)

// Sentinel errors surfaced to the transport layer as 400s.
var (
	ErrTextTooShort    = errors.New("evaluation: text below minimum word count")
	ErrInvalidAudience = errors.New("evaluation: invalid audience")
)

// Component weights of the global score. When coherence is absent its
// contribution is zero and the remaining weights are not renormalized, so
// coherence-less scores are bounded by 0.75.
const (
	WeightCorrectness = 0.30
	WeightVocabulary  = 0.25
	WeightReadability = 0.20
	WeightCoherence   = 0.25
)

// CorrectnessAnalyzer scores grammatical correctness.
type CorrectnessAnalyzer interface {
	Analyze(ctx context.Context, text string) (model.CorrectnessResult, error)
}

// VocabularyAnalyzer scores word choice given the correctness issues.
type VocabularyAnalyzer interface {
	Analyze(ctx context.Context, text string, issues []model.TextIssue) model.VocabularyResult
}

// ReadabilityAnalyzer scores reading ease, optionally audience-adjusted.
type ReadabilityAnalyzer interface {
	Analyze(ctx context.Context, text string, audience model.Audience) model.ReadabilityResult
}

// CoherenceAnalyzer scores logical flow through an LLM.
type CoherenceAnalyzer interface {
	Analyze(ctx context.Context, text, topic string) (model.CoherenceResult, error)
}

var meter = telemetry.Meter("refinescore/evaluation")

// Service runs the four analyzers over a text. Correctness, readability and
// coherence run concurrently; vocabulary starts once correctness hands over
// its issue list. Any analyzer failure aborts the evaluation, except
// coherence being unconfigured, which is not a failure.
type Service struct {
	correctness CorrectnessAnalyzer
	vocabulary  VocabularyAnalyzer
	readability ReadabilityAnalyzer
	coherence   CoherenceAnalyzer // nil when no LLM credential is configured
	logger      *slog.Logger
}

// New wires the pipeline. Pass coherence as nil to run without the LLM;
// the result then reports coherence as absent.
func New(correctness CorrectnessAnalyzer, vocabulary VocabularyAnalyzer, readability ReadabilityAnalyzer, coherence CoherenceAnalyzer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		correctness: correctness,
		vocabulary:  vocabulary,
		readability: readability,
		coherence:   coherence,
		logger:      logger,
	}
}

// Evaluate scores req.Text. Texts below the word gate return ErrTextTooShort;
// unknown audience tags return ErrInvalidAudience. Analyzer failures
// propagate with their sentinel causes intact.
func (s *Service) Evaluate(ctx context.Context, req model.EvaluationRequest) (model.GlobalScore, error) {
	start := time.Now()

	if req.WordCount() < model.MinEvaluationWords {
		return model.GlobalScore{}, ErrTextTooShort
	}
	audience, err := model.ParseAudience(req.Audience)
	if err != nil {
		return model.GlobalScore{}, fmt.Errorf("%w: %v", ErrInvalidAudience, err)
	}

	var (
		correctnessRes model.CorrectnessResult
		vocabularyRes  model.VocabularyResult
		readabilityRes model.ReadabilityResult
		coherenceRes   *model.CoherenceResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cStart := time.Now()
		var cErr error
		correctnessRes, cErr = s.correctness.Analyze(gctx, req.Text)
		s.record(gctx, "correctness", cStart, cErr)
		if cErr != nil {
			return fmt.Errorf("correctness: %w", cErr)
		}

		// One-shot handoff: the issue list is immutable from here on and
		// unblocks the vocabulary analysis.
		vStart := time.Now()
		vocabularyRes = s.vocabulary.Analyze(gctx, req.Text, correctnessRes.Issues)
		s.record(gctx, "vocabulary", vStart, nil)
		return nil
	})

	g.Go(func() error {
		rStart := time.Now()
		readabilityRes = s.readability.Analyze(gctx, req.Text, audience)
		s.record(gctx, "readability", rStart, nil)
		return nil
	})

	if s.coherence != nil {
		g.Go(func() error {
			cStart := time.Now()
			result, cErr := s.coherence.Analyze(gctx, req.Text, req.Topic)
			s.record(gctx, "coherence", cStart, cErr)
			if cErr != nil {
				return fmt.Errorf("coherence: %w", cErr)
			}
			coherenceRes = &result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.GlobalScore{}, err
	}

	score := Aggregate(correctnessRes, vocabularyRes, readabilityRes, coherenceRes)
	s.record(ctx, "total", start, nil)
	s.logger.Info("evaluation complete",
		"score", score.Score,
		"word_count", correctnessRes.WordCount,
		"coherence_skipped", coherenceRes == nil,
		"duration_ms", time.Since(start).Milliseconds())
	return score, nil
}

// Aggregate folds the component results into the global score using the
// fixed weights. A nil coherence contributes nothing.
func Aggregate(correctness model.CorrectnessResult, vocabulary model.VocabularyResult, readability model.ReadabilityResult, coherence *model.CoherenceResult) model.GlobalScore {
	score := WeightCorrectness*correctness.Score +
		WeightVocabulary*vocabulary.Score +
		WeightReadability*readability.Score
	if coherence != nil {
		score += WeightCoherence * coherence.Score
	}
	score = model.Round(score, 4)

	return model.GlobalScore{
		Score:          score,
		ScoreInPercent: model.Round(score*100, 2),
		Correctness:    correctness,
		Vocabulary:     vocabulary,
		Readability:    readability,
		Coherence:      coherence,
	}
}

// record emits the per-component duration and count metrics. Instruments are
// created lazily so the service works with or without a configured meter
// provider.
func (s *Service) record(ctx context.Context, component string, start time.Time, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("component", component),
		attribute.Bool("error", err != nil),
	}
	if counter, cErr := meter.Int64Counter("evaluation.count"); cErr == nil {
		counter.Add(ctx, 1, otelmetric.WithAttributes(attrs...))
	}
	if hist, hErr := meter.Float64Histogram("evaluation.duration",
		otelmetric.WithUnit("ms")); hErr == nil {
		hist.Record(ctx, float64(time.Since(start).Milliseconds()), otelmetric.WithAttributes(attrs...))
	}
}
