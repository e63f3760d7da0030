// Package progress carries batch progress events to whoever is watching a
// reconciliation session. The engine only sees the ProgressSink interface;
// the transports live here.
package progress

import (
	"context"
	"encoding/json"
	"fmt"

	reconciledomain "github.com/campuslabs/feeflow/internal/reconcile/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "feeflow:progress:"

// event is the wire shape published to subscribers. Kind is one of
// "progress", "done", "failed".
type event struct {
	Kind         string `json:"event"`
	Processed    *int   `json:"processed,omitempty"`
	Total        *int   `json:"total,omitempty"`
	Percent      *int   `json:"percent,omitempty"`
	SuccessCount *int   `json:"success_count,omitempty"`
	ErrorCount   *int   `json:"error_count,omitempty"`
}

// RedisSink publishes progress over Redis pub/sub, one channel per session.
type RedisSink struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisSink(client *redis.Client, log *zap.Logger) *RedisSink {
	return &RedisSink{
		client: client,
		log:    log.Named("progress.redis"),
	}
}

func Channel(sessionID string) string {
	return channelPrefix + sessionID
}

func (s *RedisSink) OnProgress(ctx context.Context, sessionID string, u reconciledomain.ProgressUpdate) error {
	return s.publish(ctx, sessionID, event{
		Kind:      "progress",
		Processed: &u.Processed,
		Total:     &u.Total,
		Percent:   &u.Percent,
	})
}

func (s *RedisSink) OnDone(ctx context.Context, sessionID string, successCount int) error {
	return s.publish(ctx, sessionID, event{
		Kind:         "done",
		SuccessCount: &successCount,
	})
}

func (s *RedisSink) OnFailed(ctx context.Context, sessionID string, errorCount, successCount int) error {
	return s.publish(ctx, sessionID, event{
		Kind:         "failed",
		ErrorCount:   &errorCount,
		SuccessCount: &successCount,
	})
}

func (s *RedisSink) publish(ctx context.Context, sessionID string, e event) error {
	if sessionID == "" {
		return nil
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal progress event: %w", err)
	}
	return s.client.Publish(ctx, Channel(sessionID), payload).Err()
}
