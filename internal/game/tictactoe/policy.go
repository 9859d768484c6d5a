package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/parlor.games/internal/game"
)

// Policy chooses the next placement for an automated opponent. Policies are
// rule-based, need no configuration, and answer in time proportional to the
// nine board cells.
type Policy interface {
	ChooseMove(state game.GameState, playerID string) (game.Move, error)
}

// cornerOrder and edgeOrder fix the priority among equivalent cells so the
// rule policy is fully deterministic.
var (
	cornerOrder = [4]int{0, 2, 6, 8}
	edgeOrder   = [4]int{1, 3, 5, 7}
)

const centerCell = 4

// RulePolicy picks, in order: an immediate win, a block of the opponent's
// immediate win, the center, the first free corner, the first free edge,
// then any remaining cell.
type RulePolicy struct{}

// ChooseMove implements Policy.
func (RulePolicy) ChooseMove(state game.GameState, playerID string) (game.Move, error) {
	board, err := decodeBoard(state)
	if err != nil {
		return game.Move{}, err
	}
	mine := tokenFor(state, playerID)
	if mine == 0 {
		return game.Move{}, fmt.Errorf("player %s is not part of this game", playerID)
	}
	theirs := 3 - mine

	if cell, ok := completingCell(board, mine); ok {
		return placeAt(playerID, cell)
	}
	if cell, ok := completingCell(board, theirs); ok {
		return placeAt(playerID, cell)
	}
	if board.Cells[centerCell] == 0 {
		return placeAt(playerID, centerCell)
	}
	for _, cell := range cornerOrder {
		if board.Cells[cell] == 0 {
			return placeAt(playerID, cell)
		}
	}
	for _, cell := range edgeOrder {
		if board.Cells[cell] == 0 {
			return placeAt(playerID, cell)
		}
	}
	for cell, token := range board.Cells {
		if token == 0 {
			return placeAt(playerID, cell)
		}
	}
	return game.Move{}, fmt.Errorf("board has no free cells")
}

// completingCell returns the first free cell, in canonical line order, that
// would complete a line for the given token.
func completingCell(board boardState, token int) (int, bool) {
	for _, line := range winLines {
		free := -1
		owned := 0
		for _, cell := range line {
			switch board.Cells[cell] {
			case token:
				owned++
			case 0:
				free = cell
			}
		}
		if owned == 2 && free >= 0 {
			return free, true
		}
	}
	return 0, false
}

// RandomPolicy picks uniformly among free cells using its own seeded
// generator, so runs are reproducible per seed.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a random policy seeded for reproducible runs.
func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

// ChooseMove implements Policy.
func (p *RandomPolicy) ChooseMove(state game.GameState, playerID string) (game.Move, error) {
	board, err := decodeBoard(state)
	if err != nil {
		return game.Move{}, err
	}
	free := make([]int, 0, len(board.Cells))
	for cell, token := range board.Cells {
		if token == 0 {
			free = append(free, cell)
		}
	}
	if len(free) == 0 {
		return game.Move{}, fmt.Errorf("board has no free cells")
	}
	return placeAt(playerID, free[p.rng.Intn(len(free))])
}

func placeAt(playerID string, cell int) (game.Move, error) {
	return PlaceMove(playerID, cell/3, cell%3)
}
