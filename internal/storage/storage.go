// Package storage defines the persistence contract for game state.
//
// Stores persist complete GameState snapshots keyed by game id. Update is a
// compare-and-swap on the state's version: callers pass the version they
// loaded, and a store must refuse the write when the persisted version has
// moved on. That check is the only concurrency guarantee a store owes; turn
// ordering is the service's job.
package storage

import (
	"context"

	"github.com/louisbranch/parlor.games/internal/game"
	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
)

var (
	// ErrNotFound indicates no game exists under the given id.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "game not found")
	// ErrAlreadyExists indicates Save collided with a persisted game id.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "game already exists")
	// ErrVersionConflict indicates the CAS expectation failed: another
	// writer persisted a newer version first. Retryable.
	ErrVersionConflict = apperrors.New(apperrors.CodeVersionConflict, "game version conflict")
)

// Store persists game state snapshots.
type Store interface {
	// Save persists a new game. ErrAlreadyExists when the id is taken.
	Save(ctx context.Context, state game.GameState) error

	// Get loads a game by id. ErrNotFound when absent.
	Get(ctx context.Context, gameID string) (game.GameState, error)

	// Update persists a new version of an existing game only if the
	// persisted version still equals expectedVersion. ErrVersionConflict
	// when it does not, ErrNotFound when the game is absent.
	Update(ctx context.Context, state game.GameState, expectedVersion uint64) error

	// Delete removes a game. ErrNotFound when absent.
	Delete(ctx context.Context, gameID string) error

	// Close releases the store's resources.
	Close() error
}
