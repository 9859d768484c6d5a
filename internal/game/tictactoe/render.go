package tictactoe

import (
	"fmt"

	"github.com/louisbranch/parlor.games/internal/game"
	"github.com/louisbranch/parlor.games/internal/game/render"
)

const (
	sceneSize = 300
	cellSize  = 100
	tokenPad  = 20
)

// RenderBoard describes the grid, the placed tokens and a status line as a
// layered scene.
func (e *Engine) RenderBoard(state game.GameState) (render.Scene, error) {
	board, err := decodeBoard(state)
	if err != nil {
		return render.Scene{}, err
	}

	grid := render.Layer{
		Name: "grid",
		Z:    0,
		Shapes: []render.Shape{
			render.Line(cellSize, 0, cellSize, sceneSize),
			render.Line(2*cellSize, 0, 2*cellSize, sceneSize),
			render.Line(0, cellSize, sceneSize, cellSize),
			render.Line(0, 2*cellSize, sceneSize, 2*cellSize),
		},
	}

	tokens := render.Layer{Name: "tokens", Z: 1}
	for cell, token := range board.Cells {
		if token == 0 {
			continue
		}
		x := (cell % 3) * cellSize
		y := (cell / 3) * cellSize
		if token == 1 {
			tokens.Shapes = append(tokens.Shapes,
				render.Line(x+tokenPad, y+tokenPad, x+cellSize-tokenPad, y+cellSize-tokenPad),
				render.Line(x+cellSize-tokenPad, y+tokenPad, x+tokenPad, y+cellSize-tokenPad),
			)
		} else {
			tokens.Shapes = append(tokens.Shapes,
				render.Circle(x+cellSize/2, y+cellSize/2, cellSize/2-tokenPad),
			)
		}
	}

	status := render.Layer{
		Name:  "status",
		Z:     2,
		Texts: []render.Text{render.Label(10, sceneSize-8, 14, statusLine(state))},
	}

	return render.Scene{
		Width:  sceneSize,
		Height: sceneSize,
		Layers: []render.Layer{grid, tokens, status},
	}, nil
}

func statusLine(state game.GameState) string {
	if state.Lifecycle == game.LifecycleCompleted {
		if state.WinnerID == "" {
			return "draw"
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
	return fmt.Sprintf("%s to move", current.Name)
}
