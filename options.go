package refinescore

import "log/slog"

// Option configures an App.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported; callers use the With* functions.
type resolvedOptions struct {
	port             int
	logger           *slog.Logger
	version          string
	grammarChecker   GrammarChecker
	withoutCoherence bool
	scoreHooks       []ScoreHook
	routeRegistrars  []RouteRegistrar
	middlewares      []Middleware
}

// WithPort overrides the TCP port from config (PORT env var).
func WithPort(port int) Option {
	return func(o *resolvedOptions) { o.port = port }
}

// WithLogger sets the structured logger for the App.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithVersion sets the version string reported in startup logs.
func WithVersion(version string) Option {
	return func(o *resolvedOptions) { o.version = version }
}

// WithGrammarChecker replaces the LanguageTool HTTP client with an external
// grammar engine. Only the last call wins. Warm-up is skipped for external
// checkers; they own their own readiness.
func WithGrammarChecker(gc GrammarChecker) Option {
	return func(o *resolvedOptions) { o.grammarChecker = gc }
}

// WithoutCoherence disables the Gemini coherence analyzer even when
// GEMINI_API_KEY is set. Scores then report coherence as absent and the
// composite tops out at the sum of the other three weights.
func WithoutCoherence() Option {
	return func(o *resolvedOptions) { o.withoutCoherence = true }
}

// WithScoreHook registers a hook to receive scored evaluations.
// Multiple hooks may be registered; all registered hooks receive every event.
func WithScoreHook(hook ScoreHook) Option {
	return func(o *resolvedOptions) { o.scoreHooks = append(o.scoreHooks, hook) }
}

// WithExtraRoutes registers additional routes on the shared HTTP mux.
// Multiple registrars may be registered; all are called in registration order.
func WithExtraRoutes(fn RouteRegistrar) Option {
	return func(o *resolvedOptions) { o.routeRegistrars = append(o.routeRegistrars, fn) }
}

// WithMiddleware registers an HTTP middleware around the routing mux.
// Multiple middlewares may be registered and are applied in registration
// order: the first-registered middleware is called first by every request.
func WithMiddleware(mw Middleware) Option {
	return func(o *resolvedOptions) { o.middlewares = append(o.middlewares, mw) }
}
