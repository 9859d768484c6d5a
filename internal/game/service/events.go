package service

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
)

// Completion describes one finished game for the analytics boundary.
type Completion struct {
	GameID     string
	GameType   string
	Players    []game.Player
	WinnerID   string
	MoveCount  int
	FinishedAt time.Time
}

// CompletionSink receives a completion event after the finished state is
// persisted. Implementations must not block the pipeline; the service
// calls them synchronously.
type CompletionSink interface {
	GameCompleted(ctx context.Context, c Completion)
}

// Recorder is an in-memory completion sink for tests and local runs.
type Recorder struct {
	mu     sync.Mutex
	events []Completion
}

// GameCompleted implements CompletionSink.
func (r *Recorder) GameCompleted(ctx context.Context, c Completion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, c)
}

// Events returns a copy of the recorded completions.
func (r *Recorder) Events() []Completion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Completion(nil), r.events...)
}
