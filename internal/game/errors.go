package game

import (
	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
)

var (
	// ErrUnknownGameType indicates a lookup for an unregistered game type.
	ErrUnknownGameType = apperrors.New(apperrors.CodeGameTypeUnknown, "game type is not registered")
	// ErrInvalidPlayerCount indicates a creation attempt with a player count
	// outside the engine's bounds.
	ErrInvalidPlayerCount = apperrors.New(apperrors.CodeGameInvalidPlayerCount, "player count is out of range for game type")
	// ErrGameNotActive indicates a move submitted against a game that is not
	// accepting moves.
	ErrGameNotActive = apperrors.New(apperrors.CodeGameNotActive, "game is not active")
	// ErrNotParticipant indicates the acting player is not part of the game.
	ErrNotParticipant = apperrors.New(apperrors.CodeMoveActorNotPlaying, "player is not a participant of this game")
	// ErrLockTimeout indicates the per-game lock could not be acquired in
	// time. Retryable.
	ErrLockTimeout = apperrors.New(apperrors.CodeGameLockTimeout, "game is busy, try again")
)
