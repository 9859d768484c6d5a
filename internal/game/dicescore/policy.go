package dicescore

import (
	"fmt"

	"github.com/louisbranch/parlor.games/internal/game"
)

// Policy chooses the next move for an automated player.
type Policy interface {
	ChooseMove(state game.GameState, playerID string) (game.Move, error)
}

// GreedyPolicy rolls keeping the most frequent die value, then scores the
// open category worth the most points. Ties between categories resolve in
// canonical category order, so the policy is fully deterministic for a
// given dice state.
type GreedyPolicy struct{}

// ChooseMove implements Policy.
func (GreedyPolicy) ChooseMove(state game.GameState, playerID string) (game.Move, error) {
	tbl, err := decodeTable(state)
	if err != nil {
		return game.Move{}, err
	}
	card, ok := tbl.Scorecards[playerID]
	if !ok {
		return game.Move{}, fmt.Errorf("player %s is not part of this game", playerID)
	}

	if state.Phase == PhaseRolling && tbl.RollCount < maxRollsPerTurn {
		return RollMove(playerID, keepMostFrequent(tbl.Dice))
	}

	best, found := Category(""), false
	bestScore := -1
	for _, c := range Categories {
		if card.Has(c) {
			continue
		}
		if score := ScoreCategory(c, tbl.Dice); score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return game.Move{}, fmt.Errorf("scorecard has no open categories")
	}
	return ScoreMove(playerID, best)
}

// keepMostFrequent marks the dice showing the value that appears most
// often, preferring the higher value on equal counts.
func keepMostFrequent(dice [5]int) [5]bool {
	var counts [7]int
	for _, d := range dice {
		if d >= 1 && d <= 6 {
			counts[d]++
		}
	}
	target, best := 0, 0
	for face := 1; face <= 6; face++ {
		if counts[face] >= best {
			target, best = face, counts[face]
		}
	}
	var keep [5]bool
	for i, d := range dice {
		keep[i] = d == target
	}
	return keep
}
