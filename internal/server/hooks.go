package server

import (
	"context"

	"github.com/textrefine/refinescore/internal/model"
)

// ScoreHook receives scored evaluations within the server layer.
// Defined here (not in the root refinescore package) to avoid a circular import:
// internal/server → refinescore → internal/server would be a cycle.
// The root refinescore package wraps refinescore.ScoreHook into this via an adapter.
//
// Hook methods are called asynchronously in goroutines. Implementations must not
// block indefinitely. Failures are logged and do not fail the originating request.
type ScoreHook interface {
	OnTextScored(ctx context.Context, req model.EvaluationRequest, score model.GlobalScore) error
}
