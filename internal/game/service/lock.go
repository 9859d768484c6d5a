package service

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
)

// DefaultLockTimeout bounds how long a move submission waits for its
// game's lock before giving up with a retryable error.
const DefaultLockTimeout = 5 * time.Second

// gameLock is the lock state for one game id. held marks the current
// owner; queue holds waiters in arrival order. The lock is handed to the
// head of the queue on release, so acquisition is first-requester-first-
// served.
type gameLock struct {
	held  bool
	queue []chan struct{}
}

// KeyedLock serializes work per key. Distinct keys never block each other;
// waiters on the same key are served in FIFO order within a bounded wait.
type KeyedLock struct {
	mu      sync.Mutex
	timeout time.Duration
	locks   map[string]*gameLock
}

// NewKeyedLock creates a keyed lock. A non-positive timeout falls back to
// DefaultLockTimeout.
func NewKeyedLock(timeout time.Duration) *KeyedLock {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &KeyedLock{timeout: timeout, locks: make(map[string]*gameLock)}
}

// Acquire takes the lock for key, waiting behind earlier requesters.
// It returns game.ErrLockTimeout when the bounded wait elapses and the
// context error when the caller gives up first.
func (l *KeyedLock) Acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	gl := l.locks[key]
	if gl == nil {
		gl = &gameLock{}
		l.locks[key] = gl
	}
	if !gl.held {
		gl.held = true
		l.mu.Unlock()
		return nil
	}
	ready := make(chan struct{})
	gl.queue = append(gl.queue, ready)
	l.mu.Unlock()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case <-ready:
		return nil
	case <-timer.C:
		if !l.abandon(key, ready) {
			// The hand-off won the race against the timer; pass the lock
			// on rather than holding it for a caller that already gave up.
			l.Release(key)
		}
		return game.ErrLockTimeout
	case <-ctx.Done():
		if !l.abandon(key, ready) {
			l.Release(key)
		}
		return ctx.Err()
	}
}

// Release hands the lock for key to the next waiter, or frees it.
func (l *KeyedLock) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	gl := l.locks[key]
	if gl == nil || !gl.held {
		return
	}
	if len(gl.queue) > 0 {
		next := gl.queue[0]
		gl.queue = gl.queue[1:]
		close(next)
		return
	}
	delete(l.locks, key)
}

// abandon removes a waiter from the queue. It reports false when the
// waiter is no longer queued, which means the lock was already handed to
// it.
func (l *KeyedLock) abandon(key string, ready chan struct{}) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	gl := l.locks[key]
	if gl == nil {
		return false
	}
	for i, w := range gl.queue {
		if w == ready {
			gl.queue = append(gl.queue[:i], gl.queue[i+1:]...)
			return true
		}
	}
	return false
}
