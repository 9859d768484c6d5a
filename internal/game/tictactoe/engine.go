// Package tictactoe implements the 3×3 grid engine. The first player in
// list order plays crosses, the second plays noughts.
package tictactoe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
	"github.com/louisbranch/parlor.games/internal/platform/id"
)

// GameType is the registry identifier for this engine.
const GameType = "tictactoe"

// ActionPlace is the only move action: place the acting player's token.
const ActionPlace = "place"

// PlacePayload is the move payload for ActionPlace.
type PlacePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// board cells hold 0 (empty), 1 (first player) or 2 (second player),
// indexed row-major.
type boardState struct {
	Cells [9]int `json:"cells"`
}

// winLines enumerates the eight winning lines in canonical order:
// rows top to bottom, columns left to right, then both diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Engine implements game.Engine for tic-tac-toe.
type Engine struct {
	newID func() (string, error)
	clock func() time.Time
}

// New creates a tic-tac-toe engine with production id generation.
func New() *Engine {
	return &Engine{newID: id.NewID, clock: time.Now}
}

// NewWithDeps creates an engine with injected id generation and clock.
func NewWithDeps(newID func() (string, error), clock func() time.Time) *Engine {
	return &Engine{newID: newID, clock: clock}
}

// Metadata describes the game type.
func (e *Engine) Metadata() game.Metadata {
	return game.Metadata{
		Type:        GameType,
		MinPlayers:  2,
		MaxPlayers:  2,
		Description: "Place tokens on a 3×3 grid; three in a row wins.",
	}
}

// Initialize creates a new game with an empty board.
func (e *Engine) Initialize(players []game.Player, cfg game.Config) (game.GameState, error) {
	state, err := game.NewGameState(e.Metadata(), players, cfg, e.clock(), e.newID)
	if err != nil {
		return game.GameState{}, err
	}

	metadata, err := json.Marshal(boardState{})
	if err != nil {
		return game.GameState{}, fmt.Errorf("encode board: %w", err)
	}
	state.Metadata = metadata
	return state, nil
}

// ValidateMove checks turn ownership, then move shape, then cell
// availability, in that order.
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

	if mv.Action != ActionPlace {
		return game.Reject(fmt.Sprintf("unknown action %q", mv.Action))
	}
	var payload PlacePayload
	if err := json.Unmarshal(mv.PayloadJSON, &payload); err != nil {
		return game.Reject("move payload is not a valid placement")
	}
	if payload.Row < 0 || payload.Row > 2 || payload.Col < 0 || payload.Col > 2 {
		return game.Reject("position is outside the board")
	}

	board, err := decodeBoard(state)
	if err != nil {
		return game.Reject(err.Error())
	}
	if board.Cells[payload.Row*3+payload.Col] != 0 {
		return game.Reject("cell is already occupied")
	}
	return game.Accept()
}

// ApplyMove places the token and resolves win, draw or turn advance.
// The caller guarantees ValidateMove passed; cheap invariants are still
// re-checked and fail loudly when violated.
func (e *Engine) ApplyMove(state game.GameState, playerID string, mv game.Move) (game.GameState, error) {
	current, err := state.CurrentPlayer()
	if err != nil {
		return game.GameState{}, err
	}
	if current.ID != playerID {
		return game.GameState{}, apperrors.New(apperrors.CodeInvariantViolation, "apply called for a player out of turn")
	}

	var payload PlacePayload
	if err := json.Unmarshal(mv.PayloadJSON, &payload); err != nil {
		return game.GameState{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "apply called with an invalid placement payload", err)
	}

	board, err := decodeBoard(state)
	if err != nil {
		return game.GameState{}, err
	}
	cell := payload.Row*3 + payload.Col
	if cell < 0 || cell >= len(board.Cells) || board.Cells[cell] != 0 {
		return game.GameState{}, apperrors.New(apperrors.CodeInvariantViolation, "apply called for an unavailable cell")
	}

	board.Cells[cell] = tokenFor(state, playerID)

	out := state.Clone()
	metadata, err := json.Marshal(board)
	if err != nil {
		return game.GameState{}, fmt.Errorf("encode board: %w", err)
	}
	out.Metadata = metadata
	out.History = append(out.History, mv)
	out.Version++
	out.UpdatedAt = mv.Timestamp.UTC()

	if token := winningToken(board); token != 0 {
		out.Lifecycle = game.LifecycleCompleted
		out.WinnerID = playerForToken(state, token)
	} else if boardFull(board) {
		out.Lifecycle = game.LifecycleCompleted
	} else {
		out.AdvanceTurn()
	}
	return out, nil
}

// IsGameOver reports whether a line is won or the board is full.
func (e *Engine) IsGameOver(state game.GameState) bool {
	board, err := decodeBoard(state)
	if err != nil {
		return false
	}
	return winningToken(board) != 0 || boardFull(board)
}

// Winner returns the id of the player owning a completed line.
func (e *Engine) Winner(state game.GameState) (string, bool) {
	board, err := decodeBoard(state)
	if err != nil {
		return "", false
	}
	token := winningToken(board)
	if token == 0 {
		return "", false
	}
	return playerForToken(state, token), true
}

// winningToken scans the eight lines in canonical order and returns the
// token owning the first completed line, or 0.
func winningToken(board boardState) int {
	for _, line := range winLines {
		a, b, c := board.Cells[line[0]], board.Cells[line[1]], board.Cells[line[2]]
		if a != 0 && a == b && b == c {
			return a
		}
	}
	return 0
}

func boardFull(board boardState) bool {
	for _, cell := range board.Cells {
		if cell == 0 {
			return false
		}
	}
	return true
}

func tokenFor(state game.GameState, playerID string) int {
	for i, p := range state.Players {
		if p.ID == playerID {
			return i + 1
		}
	}
	return 0
}

func playerForToken(state game.GameState, token int) string {
	if token < 1 || token > len(state.Players) {
		return ""
	}
	return state.Players[token-1].ID
}

func decodeBoard(state game.GameState) (boardState, error) {
	var board boardState
	if len(state.Metadata) == 0 {
		return boardState{}, apperrors.New(apperrors.CodeInvariantViolation, "game has no board metadata")
	}
	if err := json.Unmarshal(state.Metadata, &board); err != nil {
		return boardState{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "board metadata is corrupt", err)
	}
	return board, nil
}

// PlaceMove builds a placement move for the given grid position.
func PlaceMove(playerID string, row, col int) (game.Move, error) {
	payload, err := json.Marshal(PlacePayload{Row: row, Col: col})
	if err != nil {
		return game.Move{}, fmt.Errorf("encode placement: %w", err)
	}
	return game.Move{PlayerID: playerID, Action: ActionPlace, PayloadJSON: payload}, nil
}
