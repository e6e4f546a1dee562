// Package refinescore is the public API for embedding the text scoring engine.
//
// Consumers import this package to construct and extend the server without
// forking it:
//
//	app, err := refinescore.New(
//	    refinescore.WithVersion(version),
//	    refinescore.WithLogger(logger),
//	    refinescore.WithScoreHook(myHook{}),
//	    refinescore.WithExtraRoutes(myRoutes),
//	)
//	if err != nil { ... }
//	if err := app.Run(ctx); err != nil { ... }
//
// The import graph enforces a strict no-cycle rule: refinescore (root)
// imports internal/*, but internal/* never imports refinescore (root).
// Public types (Evaluation, Issue) are standalone structs with no internal
// imports; conversion helpers (toPublicEvaluation, toInternalIssue) live
// here because this is the only file that sees both sides of the boundary.
package refinescore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/textrefine/refinescore/api"
	"github.com/textrefine/refinescore/internal/config"
	"github.com/textrefine/refinescore/internal/languagetool"
	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/ratelimit"
	"github.com/textrefine/refinescore/internal/server"
	"github.com/textrefine/refinescore/internal/service/coherence"
	"github.com/textrefine/refinescore/internal/service/correctness"
	"github.com/textrefine/refinescore/internal/service/evaluation"
	"github.com/textrefine/refinescore/internal/service/readability"
	"github.com/textrefine/refinescore/internal/service/vocabulary"
	"github.com/textrefine/refinescore/internal/telemetry"
)

// shutdownHTTPTimeout caps the in-flight request drain during Shutdown.
const shutdownHTTPTimeout = 10 * time.Second

// App is the scoring engine lifecycle. Construct with New(), run with Run().
// App has no public fields; use New() options to configure it.
type App struct {
	cfg          config.Config
	srv          *server.Server
	limiter      ratelimit.Limiter
	grammar      *languagetool.Client // nil when an external checker is injected
	otelShutdown func(context.Context) error
	logger       *slog.Logger
	version      string
}

// New initialises the scoring engine. It loads configuration, wires the
// analyzers and the HTTP server, and returns a ready-to-run App.
// It does NOT start any goroutines or accept HTTP connections; call Run().
func New(opts ...Option) (*App, error) {
	// Apply options.
	o := resolvedOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	// Load configuration (env vars), then apply option overrides.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.port != 0 {
		cfg.Port = o.port
	}
	version := o.version
	if version == "" {
		version = "dev"
	}

	logger.Info("refinescore starting", "version", version, "port", cfg.Port)

	// Initialize OpenTelemetry.
	otelShutdown, err := telemetry.Init(context.Background(), cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	// Grammar engine. An external override takes priority over the HTTP client.
	var checker correctness.Checker
	var grammar *languagetool.Client
	if o.grammarChecker != nil {
		checker = &grammarCheckerAdapter{gc: o.grammarChecker}
		logger.Info("grammar engine: external checker")
	} else {
		grammar = languagetool.New(cfg.LanguageToolURL, cfg.LanguageToolTimeout, logger)
		checker = grammar
		logger.Info("grammar engine: languagetool", "url", cfg.LanguageToolURL)
	}

	// Coherence analyzer. Optional: scoring runs without it, reporting the
	// coherence component as absent.
	var coherenceAnalyzer evaluation.CoherenceAnalyzer
	switch {
	case o.withoutCoherence:
		logger.Info("coherence: disabled by option")
	case cfg.GeminiAPIKey == "":
		logger.Info("coherence: disabled (no GEMINI_API_KEY)")
	default:
		a, cohErr := coherence.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.CoherenceTimeout, logger)
		if cohErr != nil {
			_ = otelShutdown(context.Background())
			return nil, fmt.Errorf("coherence: %w", cohErr)
		}
		coherenceAnalyzer = a
		logger.Info("coherence: gemini", "model", cfg.GeminiModel)
	}

	// Rate limiter.
	var limiter ratelimit.Limiter
	if cfg.RateLimitEnabled {
		limiter = ratelimit.NewMemoryLimiter()
		logger.Info("rate limiting: memory (in-process token bucket)",
			"evaluation_per_min", cfg.EvaluationLimit, "health_per_min", cfg.HealthLimit)
	} else {
		limiter = ratelimit.NoopLimiter{}
		logger.Info("rate limiting: disabled")
	}

	// Scoring pipeline.
	evalSvc := evaluation.New(
		correctness.New(checker, logger),
		vocabulary.New(vocabulary.MethodLinear, logger),
		readability.New(logger),
		coherenceAnalyzer,
		logger,
	)

	// Adapt score hooks from public refinescore.ScoreHook to internal server.ScoreHook.
	var scoreHooks []server.ScoreHook
	for _, h := range o.scoreHooks {
		scoreHooks = append(scoreHooks, &scoreHookAdapter{hook: h})
	}

	// Adapt route registrars from public refinescore.RouteRegistrar to internal server format.
	var extraRoutes func(*http.ServeMux)
	if len(o.routeRegistrars) > 0 {
		registrars := o.routeRegistrars
		extraRoutes = func(mux *http.ServeMux) {
			for _, fn := range registrars {
				fn(mux)
			}
		}
	}

	// Adapt middlewares from refinescore.Middleware to func(http.Handler) http.Handler.
	var middlewares []func(http.Handler) http.Handler
	for _, mw := range o.middlewares {
		middlewares = append(middlewares, mw)
	}

	// Create HTTP server.
	srv := server.New(server.ServerConfig{
		Evaluator:           evalSvc,
		Logger:              logger,
		Limiter:             limiter,
		ScoreHooks:          scoreHooks,
		Port:                cfg.Port,
		ReadTimeout:         cfg.ReadTimeout,
		WriteTimeout:        cfg.WriteTimeout,
		Origins:             cfg.Origins,
		Version:             version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		OpenAPISpec:         api.OpenAPISpec,
		EvaluationLimit:     cfg.EvaluationLimit,
		HealthLimit:         cfg.HealthLimit,
		ExtraMiddleware:     middlewares,
		ExtraRoutes:         extraRoutes,
	})

	return &App{
		cfg:          cfg,
		srv:          srv,
		limiter:      limiter,
		grammar:      grammar,
		otelShutdown: otelShutdown,
		logger:       logger,
		version:      version,
	}, nil
}

// Run warms the grammar engine and starts the HTTP server, then blocks until
// ctx is cancelled or a fatal server error occurs. On return, Shutdown is
// called automatically; callers should not call Shutdown separately.
func (a *App) Run(ctx context.Context) error {
	if a.grammar != nil {
		go a.warmupGrammar(ctx)
	}

	// Start HTTP server.
	errCh := make(chan error, 1)
	go func() {
		if err := a.srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Block until signal or server error.
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	return a.Shutdown(context.Background())
}

// warmupGrammar primes the grammar server before traffic arrives. Without
// this the first evaluation pays the engine's cold-start cost, which can
// exceed the per-check timeout.
func (a *App) warmupGrammar(ctx context.Context) {
	a.logger.Info("grammar engine: warming up")
	if err := a.grammar.Warmup(ctx); err != nil {
		a.logger.Warn("grammar engine warmup failed (will proceed anyway)", "error", err)
		return
	}
	a.logger.Info("grammar engine: ready")
}

// Shutdown performs a three-phase graceful shutdown:
// (1) stop accepting HTTP requests and drain in-flight,
// (2) stop the rate limiter's bookkeeping,
// (3) flush and close the OTEL providers.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("refinescore shutting down")

	// Phase 1: HTTP drain.
	httpCtx, httpCancel := context.WithTimeout(ctx, shutdownHTTPTimeout)
	if err := a.srv.Shutdown(httpCtx); err != nil {
		a.logger.Error("http shutdown error", "error", err)
	}
	httpCancel()

	// Phase 2: limiter cleanup.
	if err := a.limiter.Close(); err != nil {
		a.logger.Error("rate limiter close error", "error", err)
	}

	// Phase 3: OTEL flush.
	_ = a.otelShutdown(context.Background())

	a.logger.Info("refinescore stopped")
	return nil
}

// ── Adapters (defined here because this file imports both sides) ───────────────

// grammarCheckerAdapter wraps a refinescore.GrammarChecker to satisfy
// correctness.Checker. It converts public issues to internal model issues at
// the boundary, deriving the fields the engine normally computes.
type grammarCheckerAdapter struct {
	gc GrammarChecker
}

func (a *grammarCheckerAdapter) Check(ctx context.Context, text string) ([]model.TextIssue, error) {
	found, err := a.gc.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	issues := make([]model.TextIssue, len(found))
	for i, f := range found {
		issues[i] = toInternalIssue(f)
	}
	return issues, nil
}

// scoreHookAdapter wraps a refinescore.ScoreHook to satisfy server.ScoreHook.
// It converts internal model types to public refinescore types at the boundary.
type scoreHookAdapter struct {
	hook ScoreHook
}

func (a *scoreHookAdapter) OnTextScored(ctx context.Context, req model.EvaluationRequest, score model.GlobalScore) error {
	return a.hook.OnTextScored(ctx, toPublicEvaluation(req, score))
}

// ── Type converters ────────────────────────────────────────────────────────────

// toPublicEvaluation converts a scored request to the public refinescore.Evaluation.
// Lives here because this is the only file that imports both sides of the boundary.
func toPublicEvaluation(req model.EvaluationRequest, score model.GlobalScore) Evaluation {
	issues := make([]Issue, len(score.Correctness.Issues))
	for i, issue := range score.Correctness.Issues {
		issues[i] = toPublicIssue(issue)
	}
	var coherenceScore *float64
	if score.Coherence != nil {
		s := score.Coherence.Score
		coherenceScore = &s
	}
	return Evaluation{
		Text:             req.Text,
		Topic:            req.Topic,
		Audience:         req.Audience,
		Score:            score.Score,
		ScoreInPercent:   score.ScoreInPercent,
		CorrectnessScore: score.Correctness.Score,
		VocabularyScore:  score.Vocabulary.Score,
		ReadabilityScore: score.Readability.Score,
		CoherenceScore:   coherenceScore,
		WordCount:        score.Correctness.WordCount,
		ReadingLevel:     score.Readability.FleschReadingEaseLevel,
		Issues:           issues,
		ScoredAt:         time.Now().UTC(),
	}
}

func toPublicIssue(i model.TextIssue) Issue {
	return Issue{
		Message:       i.Message,
		Replacements:  i.Replacements,
		ErrorText:     i.ErrorText,
		StartOffset:   i.StartOffset,
		EndOffset:     i.EndOffset,
		Category:      Category(i.Category),
		RuleIssueType: i.RuleIssueType,
	}
}

// toInternalIssue converts a public Issue to the internal model, deriving
// ErrorLength from the offsets and Penalty from the category severity.
func toInternalIssue(i Issue) model.TextIssue {
	category := toInternalCategory(string(i.Category))
	length := i.EndOffset - i.StartOffset
	if length < 0 {
		length = 0
	}
	return model.TextIssue{
		Message:       i.Message,
		Replacements:  i.Replacements,
		ErrorText:     i.ErrorText,
		ErrorLength:   length,
		StartOffset:   i.StartOffset,
		EndOffset:     i.StartOffset + length,
		Category:      category,
		RuleIssueType: i.RuleIssueType,
		Penalty:       category.Severity(),
	}
}

// toInternalCategory accepts both normalized category names (GRAMMAR_RULES)
// and raw LanguageTool category IDs (GRAMMAR, TYPOS). Anything else falls
// back the same way unknown engine categories do.
func toInternalCategory(raw string) model.IssueCategory {
	switch c := model.IssueCategory(strings.ToUpper(raw)); c {
	case model.CategoryGrammarRules, model.CategoryMechanics, model.CategorySpellingTyping,
		model.CategoryWordUsage, model.CategoryMeaningLogic, model.CategoryStylisticIssues,
		model.CategoryContextualStyle:
		return c
	}
	return model.CategoryFromLanguageTool(raw)
}
