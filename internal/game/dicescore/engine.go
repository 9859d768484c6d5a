// Package dicescore implements the dice-scoring engine. Players alternate
// turns of up to three seeded dice rolls followed by scoring one of
// thirteen categories; the highest grand total wins.
package dicescore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
	"github.com/louisbranch/parlor.games/internal/platform/id"
	"github.com/louisbranch/parlor.games/internal/platform/random"
)

// GameType is the registry identifier for this engine.
const GameType = "dicescore"

// Turn phases. A turn starts in the rolling phase; after the third roll it
// moves to the scoring phase, where only score moves remain valid.
const (
	PhaseRolling = "rolling"
	PhaseScoring = "scoring"
)

// Move actions.
const (
	// ActionRoll re-rolls the dice not covered by the keep mask.
	ActionRoll = "roll"
	// ActionScore consumes a category with the current dice and ends the
	// turn. Scoring is allowed after any roll, not only the third.
	ActionScore = "score"
)

const maxRollsPerTurn = 3

// RollPayload is the move payload for ActionRoll. Keep must carry exactly
// one flag per die; the mask is ignored on the first roll of a turn.
type RollPayload struct {
	Keep []bool `json:"keep"`
}

// ScorePayload is the move payload for ActionScore.
type ScorePayload struct {
	Category Category `json:"category"`
}

// Engine implements game.Engine for dice scoring.
type Engine struct {
	newID   func() (string, error)
	newSeed func() (int64, error)
	clock   func() time.Time
}

// New creates a dice-scoring engine with production id and seed generation.
func New() *Engine {
	return &Engine{newID: id.NewID, newSeed: random.NewSeed, clock: time.Now}
}

// NewWithDeps creates an engine with injected id, seed and clock functions.
func NewWithDeps(newID func() (string, error), newSeed func() (int64, error), clock func() time.Time) *Engine {
	return &Engine{newID: newID, newSeed: newSeed, clock: clock}
}

// Metadata describes the game type.
func (e *Engine) Metadata() game.Metadata {
	return game.Metadata{
		Type:        GameType,
		MinPlayers:  1,
		MaxPlayers:  6,
		Description: "Roll five dice up to three times per turn and score thirteen categories.",
	}
}

// Initialize creates a new game with empty scorecards. When cfg.Seed is
// zero a crypto-random seed is drawn and persisted, so the same history
// always replays to the same dice.
func (e *Engine) Initialize(players []game.Player, cfg game.Config) (game.GameState, error) {
	state, err := game.NewGameState(e.Metadata(), players, cfg, e.clock(), e.newID)
	if err != nil {
		return game.GameState{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = e.newSeed()
		if err != nil {
			return game.GameState{}, apperrors.Wrap(apperrors.CodeSeedUnavailable, "generate game seed", err)
		}
	}

	tbl := tableState{Seed: seed, Scorecards: make(map[string]*Scorecard, len(players))}
	tbl.resetTurn()
	for _, p := range players {
		tbl.Scorecards[p.ID] = NewScorecard()
	}

	metadata, err := json.Marshal(tbl)
	if err != nil {
		return game.GameState{}, fmt.Errorf("encode table: %w", err)
	}
	state.Metadata = metadata
	state.Phase = PhaseRolling
	return state, nil
}

// ValidateMove checks turn ownership, then move shape, then phase and
// category rules, in that order.
func (e *Engine) ValidateMove(state game.GameState, playerID string, mv game.Move) game.ValidationResult {
	if state.Lifecycle != game.LifecycleActive {
		return game.Reject("game is not active")
	}
	current, err := state.CurrentPlayer()
	if err != nil {
		return game.Reject(err.Error())
	}
	if current.ID != playerID {
		return game.Reject("it is not your turn")
	}

	tbl, err := decodeTable(state)
	if err != nil {
		return game.Reject(err.Error())
	}

	switch mv.Action {
	case ActionRoll:
		var payload RollPayload
		if err := json.Unmarshal(mv.PayloadJSON, &payload); err != nil {
			return game.Reject("move payload is not a valid roll")
		}
		if len(payload.Keep) != len(tbl.Dice) {
			return game.Reject("keep mask must cover all five dice")
		}
		if state.Phase != PhaseRolling {
			return game.Reject("turn is not in the rolling phase")
		}
		if tbl.RollCount >= maxRollsPerTurn {
			return game.Reject("no rolls left this turn")
		}
		return game.Accept()

	case ActionScore:
		var payload ScorePayload
		if err := json.Unmarshal(mv.PayloadJSON, &payload); err != nil {
			return game.Reject("move payload is not a valid score")
		}
		if tbl.RollCount == 0 {
			return game.Reject("roll the dice before scoring")
		}
		if !payload.Category.Known() {
			return game.Reject(fmt.Sprintf("unknown category %q", payload.Category))
		}
		card, ok := tbl.Scorecards[playerID]
		if !ok {
			return game.Reject("player has no scorecard")
		}
		if card.Has(payload.Category) {
			return game.Reject(fmt.Sprintf("category %s is already filled", payload.Category))
		}
		return game.Accept()
	}
	return game.Reject(fmt.Sprintf("unknown action %q", mv.Action))
}

// ApplyMove executes a roll or a score. The caller guarantees ValidateMove
// passed; cheap invariants are still re-checked and fail loudly when
// violated, a missing scorecard included.
func (e *Engine) ApplyMove(state game.GameState, playerID string, mv game.Move) (game.GameState, error) {
	current, err := state.CurrentPlayer()
	if err != nil {
		return game.GameState{}, err
	}
	if current.ID != playerID {
		return game.GameState{}, apperrors.New(apperrors.CodeInvariantViolation, "apply called for a player out of turn")
	}

	tbl, err := decodeTable(state)
	if err != nil {
		return game.GameState{}, err
	}
	tbl = tbl.clone()

	out := state.Clone()
	out.History = append(out.History, mv)
	out.Version++
	out.UpdatedAt = mv.Timestamp.UTC()

	switch mv.Action {
	case ActionRoll:
		var payload RollPayload
		if err := json.Unmarshal(mv.PayloadJSON, &payload); err != nil {
			return game.GameState{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "apply called with an invalid roll payload", err)
		}
		if tbl.RollCount >= maxRollsPerTurn {
			return game.GameState{}, apperrors.New(apperrors.CodeInvariantViolation, "apply called with no rolls left")
		}
		var keep [5]bool
		copy(keep[:], payload.Keep)
		tbl.roll(len(out.History), keep)
		if tbl.RollCount >= maxRollsPerTurn {
			out.Phase = PhaseScoring
		}

	case ActionScore:
		var payload ScorePayload
		if err := json.Unmarshal(mv.PayloadJSON, &payload); err != nil {
			return game.GameState{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "apply called with an invalid score payload", err)
		}
		card, ok := tbl.Scorecards[playerID]
		if !ok {
			return game.GameState{}, apperrors.WithMetadata(apperrors.CodeInvariantViolation,
				"apply called for a player with no scorecard",
				map[string]string{"game_id": state.ID, "player_id": playerID})
		}
		if card.Has(payload.Category) {
			return game.GameState{}, apperrors.WithMetadata(apperrors.CodeInvariantViolation,
				"apply called for a filled category",
				map[string]string{"game_id": state.ID, "category": string(payload.Category)})
		}
		card.Fill(payload.Category, ScoreCategory(payload.Category, tbl.Dice))
		tbl.resetTurn()

		if tableComplete(tbl) {
			out.Lifecycle = game.LifecycleCompleted
			out.Phase = ""
			if winner, ok := tableWinner(tbl); ok {
				out.WinnerID = winner
			}
		} else {
			out.Phase = PhaseRolling
			out.AdvanceTurn()
		}

	default:
		return game.GameState{}, apperrors.New(apperrors.CodeInvariantViolation,
			fmt.Sprintf("apply called with unknown action %q", mv.Action))
	}

	metadata, err := json.Marshal(tbl)
	if err != nil {
		return game.GameState{}, fmt.Errorf("encode table: %w", err)
	}
	out.Metadata = metadata
	return out, nil
}

// IsGameOver reports whether every scorecard is complete.
func (e *Engine) IsGameOver(state game.GameState) bool {
	if state.Lifecycle == game.LifecycleCompleted {
		return true
	}
	tbl, err := decodeTable(state)
	if err != nil {
		return false
	}
	return tableComplete(tbl)
}

// Winner returns the player with the strictly highest grand total. Any tie
// for the maximum means the game has no winner.
func (e *Engine) Winner(state game.GameState) (string, bool) {
	tbl, err := decodeTable(state)
	if err != nil || !tableComplete(tbl) {
		return "", false
	}
	return tableWinner(tbl)
}

func tableComplete(tbl *tableState) bool {
	if len(tbl.Scorecards) == 0 {
		return false
	}
	for _, card := range tbl.Scorecards {
		if !card.Complete() {
			return false
		}
	}
	return true
}

func tableWinner(tbl *tableState) (string, bool) {
	best, winner := -1, ""
	tied := false
	for playerID, card := range tbl.Scorecards {
		switch {
		case card.GrandTotal > best:
			best, winner, tied = card.GrandTotal, playerID, false
		case card.GrandTotal == best:
			tied = true
		}
	}
	if tied || winner == "" {
		return "", false
	}
	return winner, true
}

func decodeTable(state game.GameState) (*tableState, error) {
	if len(state.Metadata) == 0 {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, "game has no table metadata")
	}
	var tbl tableState
	if err := json.Unmarshal(state.Metadata, &tbl); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvariantViolation, "table metadata is corrupt", err)
	}
	return &tbl, nil
}

// RollMove builds a roll move with the given keep mask.
func RollMove(playerID string, keep [5]bool) (game.Move, error) {
	payload, err := json.Marshal(RollPayload{Keep: keep[:]})
	if err != nil {
		return game.Move{}, fmt.Errorf("encode roll: %w", err)
	}
	return game.Move{PlayerID: playerID, Action: ActionRoll, PayloadJSON: payload}, nil
}

// ScoreMove builds a score move for the given category.
func ScoreMove(playerID string, c Category) (game.Move, error) {
	payload, err := json.Marshal(ScorePayload{Category: c})
	if err != nil {
		return game.Move{}, fmt.Errorf("encode score: %w", err)
	}
	return game.Move{PlayerID: playerID, Action: ActionScore, PayloadJSON: payload}, nil
}
