package refinescore

import (
	"context"
	"net/http"
)

// GrammarChecker finds grammar issues in a text.
// When provided via WithGrammarChecker, replaces the LanguageTool HTTP client.
// Offsets in returned issues are rune positions in the checked text; the
// engine derives each issue's penalty from its category. App wraps the
// checker in an adapter for internal use.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]Issue, error)
}

// ScoreHook receives async notifications after each successfully scored text.
// Multiple hooks may be registered via multiple WithScoreHook calls.
// Hook methods run in goroutines and they must not block indefinitely.
// Failures are logged but do not fail the originating request.
type ScoreHook interface {
	OnTextScored(ctx context.Context, eval Evaluation) error
}

// RouteRegistrar registers additional routes on the shared HTTP mux.
// Extra routes share the mux, middleware chain, and OTEL instrumentation
// with the built-in routes. The function is called once during New() after
// all built-in routes are registered.
type RouteRegistrar func(mux *http.ServeMux)

// Middleware wraps the routing mux inside the built-in chain, so it sees
// request IDs and is covered by logging and panic recovery. Use for auth
// gates, cross-cutting headers, or request shaping.
// Multiple middlewares are applied in registration order (first-registered
// is called first by every request).
type Middleware func(http.Handler) http.Handler
