package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
)

func TestAcquireAndRelease(t *testing.T) {
	l := NewKeyedLock(time.Second)

	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	l.Release("game-1")
	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	l.Release("game-1")
}

func TestDistinctKeysNeverBlock(t *testing.T) {
	l := NewKeyedLock(50 * time.Millisecond)

	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire game-1: %v", err)
	}
	defer l.Release("game-1")

	// game-2 must not wait behind game-1's holder.
	if err := l.Acquire(context.Background(), "game-2"); err != nil {
		t.Fatalf("acquire game-2: %v", err)
	}
	l.Release("game-2")
}

func TestAcquireTimesOut(t *testing.T) {
	l := NewKeyedLock(20 * time.Millisecond)

	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.Release("game-1")

	err := l.Acquire(context.Background(), "game-1")
	if !errors.Is(err, game.ErrLockTimeout) {
		t.Fatalf("err = %v, want lock timeout", err)
	}
}

func TestAcquireHonorsContext(t *testing.T) {
	l := NewKeyedLock(time.Second)

	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.Release("game-1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Acquire(ctx, "game-1") }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("canceled waiter never returned")
	}
}

func TestWaitersServedInArrivalOrder(t *testing.T) {
	l := NewKeyedLock(time.Second)

	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	const waiters = 3
	order := make(chan int, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := l.Acquire(context.Background(), "game-1"); err != nil {
				t.Errorf("waiter %d: %v", n, err)
				return
			}
			order <- n
			l.Release("game-1")
		}(i)
		// Give each waiter time to enqueue before the next arrives.
		time.Sleep(20 * time.Millisecond)
	}

	l.Release("game-1")
	wg.Wait()
	close(order)

	want := 0
	for got := range order {
		if got != want {
			t.Fatalf("waiter %d acquired before waiter %d", got, want)
		}
		want++
	}
	if want != waiters {
		t.Fatalf("served %d waiters, want %d", want, waiters)
	}
}

func TestLockUsableAfterTimeout(t *testing.T) {
	l := NewKeyedLock(20 * time.Millisecond)

	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := l.Acquire(context.Background(), "game-1"); !errors.Is(err, game.ErrLockTimeout) {
		t.Fatalf("err = %v, want lock timeout", err)
	}

	l.Release("game-1")
	if err := l.Acquire(context.Background(), "game-1"); err != nil {
		t.Fatalf("acquire after timeout: %v", err)
	}
	l.Release("game-1")
}
