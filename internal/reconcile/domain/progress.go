package domain

import (
	"context"
	"math"
)

// ProgressUpdate is one per-row tick. Processed runs 0 through Total
// inclusive, strictly increasing.
type ProgressUpdate struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// ProgressSink receives batch progress addressed by the caller-supplied
// session identifier. The engine never knows the concrete transport.
// Emission failures are the sink's problem to report; the orchestrator logs
// them and keeps going.
type ProgressSink interface {
	OnProgress(ctx context.Context, sessionID string, update ProgressUpdate) error
	OnDone(ctx context.Context, sessionID string, successCount int) error
	OnFailed(ctx context.Context, sessionID string, errorCount, successCount int) error
}

// PercentOf reports round(processed/total*100), with an empty batch pinned
// at 100.
func PercentOf(processed, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(processed) / float64(total) * 100))
}
