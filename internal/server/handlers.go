package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/textrefine/refinescore/internal/languagetool"
	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/service/evaluation"
)

// ErrMsgGrammarTimeout is the user-visible message for a grammar engine
// timeout. The request is retry-worthy, hence 408 rather than 500.
const ErrMsgGrammarTimeout = "Server timeout: the grammar check took too long. Please try again."

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	evaluator           Evaluator
	logger              *slog.Logger
	maxRequestBodyBytes int64
	openapiSpec         []byte
	// scoreHooks are fired asynchronously after each successful evaluation.
	// Nil or empty slice means no hooks registered.
	scoreHooks []ScoreHook
}

// HandlersDeps holds all dependencies for constructing Handlers.
// Optional (nil-safe): ScoreHooks, OpenAPISpec.
type HandlersDeps struct {
	Evaluator           Evaluator
	Logger              *slog.Logger
	MaxRequestBodyBytes int64
	ScoreHooks          []ScoreHook
	OpenAPISpec         []byte
}

// NewHandlers creates a new Handlers with all dependencies.
func NewHandlers(d HandlersDeps) *Handlers {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		evaluator:           d.Evaluator,
		logger:              logger,
		maxRequestBodyBytes: d.MaxRequestBodyBytes,
		openapiSpec:         d.OpenAPISpec,
		scoreHooks:          d.ScoreHooks,
	}
}

// HandleEvaluation handles POST /api/v1/evaluation.
func (h *Handlers) HandleEvaluation(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluationRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	score, err := h.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		h.writeEvaluationError(w, r, req, err)
		return
	}

	h.fireScoreHooks(req, score)
	writeJSON(w, r, http.StatusOK, score)
}

// writeEvaluationError maps pipeline failures onto the HTTP error table.
// Internal details never reach the client; they are logged instead.
func (h *Handlers) writeEvaluationError(w http.ResponseWriter, r *http.Request, req model.EvaluationRequest, err error) {
	switch {
	case errors.Is(err, evaluation.ErrTextTooShort):
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, model.ErrMsgTextTooShort)

	case errors.Is(err, evaluation.ErrInvalidAudience):
		msg := "invalid audience"
		if _, parseErr := model.ParseAudience(req.Audience); parseErr != nil {
			msg = parseErr.Error()
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, msg)

	case errors.Is(err, languagetool.ErrTimeout):
		h.logger.Warn("grammar engine timed out",
			"error", err, "client_ip", clientIP(r), "request_id", RequestIDFromContext(r.Context()))
		writeError(w, r, http.StatusRequestTimeout, model.ErrCodeUpstreamTimeout, ErrMsgGrammarTimeout)

	default:
		h.writeInternalError(w, r, "evaluation failed", err)
	}
}

// writeInternalError logs the cause and writes an opaque 500.
func (h *Handlers) writeInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		"error", err, "client_ip", clientIP(r), "request_id", RequestIDFromContext(r.Context()))
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError,
		"Error computing score, please try again.")
}

// fireScoreHooks dispatches the evaluation to registered hooks without
// blocking the response.
func (h *Handlers) fireScoreHooks(req model.EvaluationRequest, score model.GlobalScore) {
	if len(h.scoreHooks) == 0 {
		return
	}
	hooks := h.scoreHooks
	logger := h.logger
	go func() {
		hookCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, hook := range hooks {
			if err := hook.OnTextScored(hookCtx, req, score); err != nil {
				logger.Warn("score hook failed", "error", err)
			}
		}
	}()
}

// HandleOpenAPISpec serves the embedded OpenAPI specification.
func (h *Handlers) HandleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if len(h.openapiSpec) == 0 {
		handleNotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.openapiSpec)
}

// HandleHealth handles GET /health and GET /. The payload is serialized
// bare (no envelope) so load balancer probes stay trivial.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("health endpoint accessed", "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(model.HealthResponse{
		Status:  "healthy",
		Service: model.ServiceName,
	})
}
