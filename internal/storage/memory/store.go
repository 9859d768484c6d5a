// Package memory provides a mutex-guarded in-memory game store, used by
// tests and ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/parlor.games/internal/game"
	"github.com/louisbranch/parlor.games/internal/storage"
)

// Store keeps game state in a map. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	games map[string]game.GameState
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{games: make(map[string]game.GameState)}
}

// Save persists a new game.
func (s *Store) Save(ctx context.Context, state game.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(state.ID) == "" {
		return fmt.Errorf("game id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[state.ID]; ok {
		return storage.ErrAlreadyExists
	}
	s.games[state.ID] = state.Clone()
	return nil
}

// Get loads a game by id.
func (s *Store) Get(ctx context.Context, gameID string) (game.GameState, error) {
	if err := ctx.Err(); err != nil {
		return game.GameState{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[gameID]
	if !ok {
		return game.GameState{}, storage.ErrNotFound
	}
	return state.Clone(), nil
}

// Update replaces a game's state when the stored version still matches
// expectedVersion.
func (s *Store) Update(ctx context.Context, state game.GameState, expectedVersion uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.games[state.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if current.Version != expectedVersion {
		return storage.ErrVersionConflict
	}
	s.games[state.ID] = state.Clone()
	return nil
}

// Delete removes a game.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[gameID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.games, gameID)
	return nil
}

// Close implements storage.Store. Nothing to release.
func (s *Store) Close() error {
	return nil
}
