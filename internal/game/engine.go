// Package game defines the persisted game state model and the engine
// contract every game type implements.
package game

import (
	"strconv"
	"time"

	"github.com/louisbranch/parlor.games/internal/game/render"
	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
)

// Metadata describes a game type's capabilities.
type Metadata struct {
	// Type is the game-type identifier used for registry dispatch.
	Type string
	// MinPlayers and MaxPlayers bound the accepted player count, inclusive.
	MinPlayers int
	MaxPlayers int
	// Description is a human-readable summary.
	Description string
}

// ValidationResult is the outcome of a move validation.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Accept returns a passing validation result.
func Accept() ValidationResult {
	return ValidationResult{Valid: true}
}

// Reject returns a failing validation result with a human-readable reason.
func Reject(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

// Config carries caller-supplied game creation options.
type Config struct {
	// GameID overrides the generated id when non-empty.
	GameID string
	// Seed drives deterministic gameplay randomness for engines that roll.
	// Zero means the engine picks a crypto-random seed.
	Seed int64
}

// Engine is the capability set every game type implements.
//
// ValidateMove and ApplyMove are pure with respect to shared memory: they
// read and write nothing outside their explicit inputs, and any gameplay
// randomness is derived from the seed persisted in the game's metadata.
type Engine interface {
	// Metadata describes the game type.
	Metadata() Metadata

	// Initialize creates a new game for the given players. Player counts
	// outside the metadata bounds are rejected.
	Initialize(players []Player, cfg Config) (GameState, error)

	// ValidateMove checks a move without altering state. Checks run in a
	// fixed order: turn ownership first, then move shape, then game rules.
	// The first failing check sets the reason.
	ValidateMove(state GameState, playerID string, mv Move) ValidationResult

	// ApplyMove produces the successor state for a move that already passed
	// validation. The input state is not mutated; the result carries
	// version+1, the move appended to history, and a refreshed UpdatedAt.
	// A failure here indicates a caller bug or a broken state invariant,
	// never a normal rules violation.
	ApplyMove(state GameState, playerID string, mv Move) (GameState, error)

	// IsGameOver reports whether the game reached a terminal state.
	IsGameOver(state GameState) bool

	// Winner returns the winning player id. ok is false when there is no
	// winner, either because the game is still running or because it ended
	// without one.
	Winner(state GameState) (winnerID string, ok bool)

	// RenderBoard describes the board as a layered scene for the drawing
	// adapter. It contains no game rules.
	RenderBoard(state GameState) (render.Scene, error)
}

// NewGameState assembles the generic portion of a freshly initialized game.
// Engines call it from Initialize and then attach their own metadata and
// phase. The returned state starts at version 1 with the first player to
// act, and is active immediately since the full player list is supplied at
// creation.
func NewGameState(meta Metadata, players []Player, cfg Config, now time.Time, newID func() (string, error)) (GameState, error) {
	if len(players) < meta.MinPlayers || len(players) > meta.MaxPlayers {
		return GameState{}, apperrors.WithMetadata(
			apperrors.CodeGameInvalidPlayerCount,
			"player count is out of range for game type",
			map[string]string{
				"game_type": meta.Type,
				"count":     strconv.Itoa(len(players)),
				"min":       strconv.Itoa(meta.MinPlayers),
				"max":       strconv.Itoa(meta.MaxPlayers),
			},
		)
	}

	gameID := cfg.GameID
	if gameID == "" {
		generated, err := newID()
		if err != nil {
			return GameState{}, apperrors.Wrap(apperrors.CodeUnknown, "generate game id", err)
		}
		gameID = generated
	}

	now = now.UTC()
	return GameState{
		ID:        gameID,
		Type:      meta.Type,
		Lifecycle: LifecycleActive,
		Players:   append([]Player(nil), players...),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
