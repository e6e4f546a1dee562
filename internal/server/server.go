// Package server implements the HTTP API for the scoring engine.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/ratelimit"
)

// Evaluator runs the scoring pipeline for one request.
type Evaluator interface {
	Evaluate(ctx context.Context, req model.EvaluationRequest) (model.GlobalScore, error)
}

// Server is the scoring engine's HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     *slog.Logger
	version    string
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServerConfig holds all dependencies and configuration for creating a Server.
// Optional fields (nil-safe): Limiter, ScoreHooks, ExtraMiddleware, ExtraRoutes.
type ServerConfig struct {
	// Required dependencies.
	Evaluator Evaluator
	Logger    *slog.Logger

	// Optional dependencies (nil = disabled).
	Limiter    ratelimit.Limiter
	ScoreHooks []ScoreHook

	// HTTP server settings.
	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Origins             []string
	Version             string
	MaxRequestBodyBytes int64
	OpenAPISpec         []byte // Embedded OpenAPI YAML.

	// Per-minute request limits, keyed by client IP.
	EvaluationLimit int
	HealthLimit     int

	// Extension points threaded through from the embedding API.
	// ExtraMiddleware wraps the mux inside the built-in chain, so it sees
	// request IDs and is covered by logging and recovery.
	ExtraMiddleware []func(http.Handler) http.Handler
	ExtraRoutes     func(mux *http.ServeMux)
}

// New creates a new HTTP server with all routes configured.
func New(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := NewHandlers(HandlersDeps{
		Evaluator:           cfg.Evaluator,
		Logger:              cfg.Logger,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		ScoreHooks:          cfg.ScoreHooks,
		OpenAPISpec:         cfg.OpenAPISpec,
	})

	// Request ID extractor for rate limit error responses.
	reqIDFunc := func(r *http.Request) string {
		return RequestIDFromContext(r.Context())
	}

	// Rate limit rules.
	evaluationRL := ratelimit.MiddlewareWithRequestID(cfg.Limiter, ratelimit.Rule{
		Prefix: "evaluation", Limit: cfg.EvaluationLimit, Window: time.Minute,
	}, ratelimit.IPKeyFunc, reqIDFunc)
	healthRL := ratelimit.MiddlewareWithRequestID(cfg.Limiter, ratelimit.Rule{
		Prefix: "health", Limit: cfg.HealthLimit, Window: time.Minute,
	}, ratelimit.IPKeyFunc, reqIDFunc)

	mux := http.NewServeMux()

	// Scoring endpoint (rate limited by IP).
	mux.Handle("POST /api/v1/evaluation", evaluationRL(http.HandlerFunc(h.HandleEvaluation)))
	mux.Handle("/api/v1/evaluation", methodNotAllowed(http.MethodPost))

	// Health probes (looser limit, bare payload for load balancers).
	mux.Handle("GET /health", healthRL(http.HandlerFunc(h.HandleHealth)))
	mux.Handle("/health", methodNotAllowed(http.MethodGet))
	mux.Handle("GET /{$}", healthRL(http.HandlerFunc(h.HandleHealth)))
	mux.Handle("/{$}", methodNotAllowed(http.MethodGet))

	mux.HandleFunc("GET /openapi.yaml", h.HandleOpenAPISpec)

	// Everything else is a 404 in the standard envelope.
	mux.Handle("/", http.HandlerFunc(handleNotFound))

	if cfg.ExtraRoutes != nil {
		cfg.ExtraRoutes(mux)
	}

	// Middleware chain (outermost executes first):
	// request ID → CORS → tracing → logging → recovery → extras → handler.
	var handler http.Handler = mux
	for i := len(cfg.ExtraMiddleware) - 1; i >= 0; i-- {
		handler = cfg.ExtraMiddleware[i](handler)
	}
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = corsMiddleware(cfg.Origins, handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler: handler,
		logger:  cfg.Logger,
		version: cfg.Version,
	}
}

// methodNotAllowed rejects methods not registered for a known path, keeping
// the JSON envelope instead of the mux's plain-text 405.
func methodNotAllowed(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInvalidInput, "method not allowed")
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "resource not found")
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr, "version", s.version)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
