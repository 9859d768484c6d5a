package dicescore

import (
	"math/rand"
)

// tableState is the engine's private view of GameState.Metadata. It tracks
// the shared dice, the current player's roll budget, and every player's
// scorecard keyed by player id.
type tableState struct {
	Seed       int64                 `json:"seed"`
	Dice       [5]int                `json:"dice"`
	Keep       [5]bool               `json:"keep"`
	RollCount  int                   `json:"roll_count"`
	Scorecards map[string]*Scorecard `json:"scorecards"`
}

func (t *tableState) clone() *tableState {
	out := *t
	out.Scorecards = make(map[string]*Scorecard, len(t.Scorecards))
	for id, card := range t.Scorecards {
		out.Scorecards[id] = card.clone()
	}
	return &out
}

// roll re-rolls the dice not covered by the keep mask. The first roll of a
// turn always re-rolls all five dice. moveIndex is the 1-based position of
// the roll in the game's move history; together with the game seed, the
// roll number and the keep mask it fully determines the outcome, so
// replaying the same history reproduces the same dice.
func (t *tableState) roll(moveIndex int, keep [5]bool) {
	rollNumber := t.RollCount + 1
	rng := rand.New(rand.NewSource(rollSeed(t.Seed, moveIndex, rollNumber, keep)))
	for i := range t.Dice {
		if rollNumber > 1 && keep[i] {
			continue
		}
		t.Dice[i] = rng.Intn(6) + 1
	}
	t.Keep = keep
	t.RollCount = rollNumber
}

// resetTurn clears the per-turn dice state for the next player.
func (t *tableState) resetTurn() {
	t.Keep = [5]bool{}
	t.RollCount = 0
	for i := range t.Dice {
		t.Dice[i] = 1
	}
}

// rollSeed mixes the game seed with the roll's position so every roll in a
// game draws from a distinct, reproducible stream. The multipliers are the
// splitmix64 constants.
func rollSeed(seed int64, moveIndex, rollNumber int, keep [5]bool) int64 {
	var mask int64
	for i, k := range keep {
		if k {
			mask |= 1 << uint(i)
		}
	}
	h := seed
	h ^= int64(moveIndex) * -7046029254386353131  // 0x9e3779b97f4a7c15
	h ^= int64(rollNumber) * -4658895280553007687 // 0xbf58476d1ce4e5b9
	h ^= mask * -7723592293110705685              // 0x94d049bb133111eb
	return h
}
