package progress

import (
	"context"

	reconciledomain "github.com/campuslabs/feeflow/internal/reconcile/domain"
)

// NopSink drops everything. Used when a batch runs without a watching
// session.
type NopSink struct{}

func (NopSink) OnProgress(context.Context, string, reconciledomain.ProgressUpdate) error {
	return nil
}

func (NopSink) OnDone(context.Context, string, int) error { return nil }

func (NopSink) OnFailed(context.Context, string, int, int) error { return nil }
