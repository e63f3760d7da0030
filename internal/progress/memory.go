package progress

import (
	"context"
	"sync"

	reconciledomain "github.com/campuslabs/feeflow/internal/reconcile/domain"
)

// RecordedEvent is one sink call as seen by a MemorySink.
type RecordedEvent struct {
	SessionID    string
	Kind         string
	Update       reconciledomain.ProgressUpdate
	SuccessCount int
	ErrorCount   int
}

// MemorySink retains every event in order. Test double.
type MemorySink struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) OnProgress(_ context.Context, sessionID string, u reconciledomain.ProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, RecordedEvent{SessionID: sessionID, Kind: "progress", Update: u})
	return nil
}

func (s *MemorySink) OnDone(_ context.Context, sessionID string, successCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, RecordedEvent{SessionID: sessionID, Kind: "done", SuccessCount: successCount})
	return nil
}

func (s *MemorySink) OnFailed(_ context.Context, sessionID string, errorCount, successCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, RecordedEvent{
		SessionID:    sessionID,
		Kind:         "failed",
		ErrorCount:   errorCount,
		SuccessCount: successCount,
	})
	return nil
}

func (s *MemorySink) Events() []RecordedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedEvent, len(s.events))
	copy(out, s.events)
	return out
}
