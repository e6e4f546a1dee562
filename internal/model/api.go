package model

import (
	"strings"
	"time"
)

// ServiceName is reported by the health endpoints.
const ServiceName = "Text Refine Score Engine"

// MinEvaluationWords is the minimum whitespace-separated word count accepted
// for evaluation. Shorter texts are rejected before any analyzer runs.
const MinEvaluationWords = 20

// ErrMsgTextTooShort is the user-visible message for texts below the gate.
const ErrMsgTextTooShort = "Text is too short for evaluation (minimum 20 words required)."

// APIResponse is the standard response envelope for all HTTP API responses.
type APIResponse struct {
	Data any          `json:"data,omitempty"`
	Meta ResponseMeta `json:"meta"`
}

// APIError is the standard error response envelope.
type APIError struct {
	Error ErrorDetail  `json:"error"`
	Meta  ResponseMeta `json:"meta"`
}

// ResponseMeta contains request metadata included in every response.
type ResponseMeta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorDetail describes an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorCode constants for standard API error codes.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUpstreamTimeout = "UPSTREAM_TIMEOUT"
)

// EvaluationRequest is the request body for POST /api/v1/evaluation.
// Topic steers the coherence analysis; Audience steers the readability
// audience fit. Both are optional.
type EvaluationRequest struct {
	Text     string `json:"text"`
	Topic    string `json:"topic,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// WordCount returns the whitespace-separated word count used by the
// evaluation gate and the correctness normalizer.
func (r EvaluationRequest) WordCount() int {
	return len(strings.Fields(r.Text))
}

// HealthResponse is the response for GET /health and GET /.
// Serialized bare (no envelope) so load balancer probes stay trivial.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
