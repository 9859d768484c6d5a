package dicescore

import (
	"fmt"

	"github.com/louisbranch/parlor.games/internal/game"
	"github.com/louisbranch/parlor.games/internal/game/render"
)

const (
	tableWidth  = 400
	tableHeight = 300

	dieSize    = 48
	dieSpacing = 72
	dieTop     = 40
	dieLeft    = 24
)

// RenderBoard describes the five dice, the per-player grand totals and a
// status line as a layered scene. Kept dice are marked with a small circle
// under the die.
func (e *Engine) RenderBoard(state game.GameState) (render.Scene, error) {
	tbl, err := decodeTable(state)
	if err != nil {
		return render.Scene{}, err
	}

	dice := render.Layer{Name: "dice", Z: 0}
	pips := render.Layer{Name: "pips", Z: 1}
	for i, value := range tbl.Dice {
		x := dieLeft + i*dieSpacing
		dice.Shapes = append(dice.Shapes, render.Rect(x, dieTop, dieSize, dieSize))
		if tbl.Keep[i] {
			dice.Shapes = append(dice.Shapes, render.Circle(x+dieSize/2, dieTop+dieSize+12, 4))
		}
		pips.Texts = append(pips.Texts,
			render.Label(x+dieSize/2-5, dieTop+dieSize/2+6, 18, fmt.Sprintf("%d", value)))
	}

	totals := render.Layer{Name: "totals", Z: 2}
	for i, p := range state.Players {
		card, ok := tbl.Scorecards[p.ID]
		if !ok {
			continue
		}
		totals.Texts = append(totals.Texts,
			render.Label(dieLeft, 140+i*20, 14, fmt.Sprintf("%s: %d", p.Name, card.GrandTotal)))
	}

	status := render.Layer{
		Name:  "status",
		Z:     3,
		Texts: []render.Text{render.Label(10, tableHeight-8, 14, tableStatusLine(state, tbl))},
	}

	return render.Scene{
		Width:  tableWidth,
		Height: tableHeight,
		Layers: []render.Layer{dice, pips, totals, status},
	}, nil
}

func tableStatusLine(state game.GameState, tbl *tableState) string {
	if state.Lifecycle == game.LifecycleCompleted {
		if state.WinnerID == "" {
			return "tie"
		}
		for _, p := range state.Players {
			if p.ID == state.WinnerID {
				return fmt.Sprintf("%s wins", p.Name)
			}
		}
		return "game over"
	}
	current, err := state.CurrentPlayer()
	if err != nil {
		return "game over"
	}
	if state.Phase == PhaseScoring {
		return fmt.Sprintf("%s scoring", current.Name)
	}
	return fmt.Sprintf("%s rolling (roll %d of %d)", current.Name, tbl.RollCount+1, maxRollsPerTurn)
}
