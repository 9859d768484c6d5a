package game

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
)

// Lifecycle describes the coarse-grained status of a game.
type Lifecycle int

const (
	// LifecycleUnspecified represents an invalid lifecycle value.
	LifecycleUnspecified Lifecycle = iota
	// LifecycleWaitingForPlayers indicates the game has not reached its
	// minimum player count.
	LifecycleWaitingForPlayers
	// LifecycleActive indicates the game accepts moves.
	LifecycleActive
	// LifecycleCompleted indicates the game is finished. Terminal.
	LifecycleCompleted
)

// String returns the lifecycle name used in logs and storage.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleWaitingForPlayers:
		return "waiting_for_players"
	case LifecycleActive:
		return "active"
	case LifecycleCompleted:
		return "completed"
	}
	return "unspecified"
}

// Player identifies one participant. Identity is immutable for the game's
// lifetime; position in the player list defines turn order.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// Move is one submitted action. Moves are appended to history and never
// edited or removed afterwards.
type Move struct {
	PlayerID    string          `json:"player_id"`
	Action      string          `json:"action"`
	PayloadJSON json.RawMessage `json:"payload,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// GameState is the complete persisted snapshot of one game in progress.
//
// Version starts at 1 and increases by exactly 1 per applied move, so
// Version-1 always equals len(History). Metadata is owned by the engine for
// Type and is opaque to everything else: it must be exactly the fold of
// History through the engine's apply.
type GameState struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Lifecycle          Lifecycle       `json:"lifecycle"`
	Players            []Player        `json:"players"`
	CurrentPlayerIndex int             `json:"current_player_index"`
	Phase              string          `json:"phase,omitempty"`
	Metadata           json.RawMessage `json:"metadata,omitempty"`
	History            []Move          `json:"history"`
	WinnerID           string          `json:"winner_id,omitempty"`
	Version            uint64          `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Clone returns a deep copy. Engines apply moves against a clone so the
// caller's state is never mutated.
func (s GameState) Clone() GameState {
	out := s
	if s.Players != nil {
		out.Players = append([]Player(nil), s.Players...)
	}
	if s.History != nil {
		out.History = append([]Move(nil), s.History...)
	}
	if s.Metadata != nil {
		out.Metadata = append(json.RawMessage(nil), s.Metadata...)
	}
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (s GameState) CurrentPlayer() (Player, error) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return Player{}, apperrors.New(apperrors.CodeInvariantViolation,
			fmt.Sprintf("current player index %d is out of range for %d players", s.CurrentPlayerIndex, len(s.Players)))
	}
	return s.Players[s.CurrentPlayerIndex], nil
}

// NextPlayer returns the player who acts after the current one, wrapping to
// the first player after the last.
func (s GameState) NextPlayer() (Player, error) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return Player{}, apperrors.New(apperrors.CodeInvariantViolation,
			fmt.Sprintf("current player index %d is out of range for %d players", s.CurrentPlayerIndex, len(s.Players)))
	}
	return s.Players[(s.CurrentPlayerIndex+1)%len(s.Players)], nil
}

// AdvanceTurn moves the turn to the next player in list order.
func (s *GameState) AdvanceTurn() {
	if len(s.Players) == 0 {
		return
	}
	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
}

// HasPlayer reports whether a player id belongs to the game.
func (s GameState) HasPlayer(playerID string) bool {
	for _, p := range s.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
