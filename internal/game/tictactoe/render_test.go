package tictactoe

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/louisbranch/parlor.games/internal/game/render"
)

func TestRenderBoardEmptyGolden(t *testing.T) {
	e := testEngine()
	state := newGame(t)

	scene, err := e.RenderBoard(state)
	if err != nil {
		t.Fatalf("render board: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.AssertJson(t, "empty_board", scene)
}

func TestRenderBoardTokens(t *testing.T) {
	e := testEngine()
	state := newGame(t)
	state = play(t, e, state, "px", 0, 0)
	state = play(t, e, state, "po", 1, 1)

	scene, err := e.RenderBoard(state)
	if err != nil {
		t.Fatalf("render board: %v", err)
	}

	var tokens *render.Layer
	for i := range scene.Layers {
		if scene.Layers[i].Name == "tokens" {
			tokens = &scene.Layers[i]
		}
	}
	if tokens == nil {
		t.Fatal("expected a tokens layer")
	}

	// One cross (two lines) and one nought (one circle).
	lines, circles := 0, 0
	for _, s := range tokens.Shapes {
		switch s.Kind {
		case render.KindLine:
			lines++
		case render.KindCircle:
			circles++
		}
	}
	if lines != 2 || circles != 1 {
		t.Fatalf("tokens = %d lines %d circles, want 2 lines 1 circle", lines, circles)
	}
}

func TestRenderBoardStatus(t *testing.T) {
	e := testEngine()
	won := newGame(t)
	won = play(t, e, won, "px", 0, 0)
	won = play(t, e, won, "po", 1, 0)
	won = play(t, e, won, "px", 0, 1)
	won = play(t, e, won, "po", 1, 1)
	won = play(t, e, won, "px", 0, 2)

	scene, err := e.RenderBoard(won)
	if err != nil {
		t.Fatalf("render board: %v", err)
	}

	status := scene.Layers[len(scene.Layers)-1]
	if len(status.Texts) != 1 {
		t.Fatalf("status texts = %d, want 1", len(status.Texts))
	}
	if status.Texts[0].Value != "Ada wins" {
		t.Fatalf("status = %q, want %q", status.Texts[0].Value, "Ada wins")
	}
}

func TestRenderLayersAreOrderedByZ(t *testing.T) {
	e := testEngine()
	scene, err := e.RenderBoard(newGame(t))
	if err != nil {
		t.Fatalf("render board: %v", err)
	}
	for i := 1; i < len(scene.Layers); i++ {
		if scene.Layers[i-1].Z > scene.Layers[i].Z {
			t.Fatalf("layers out of z order: %d before %d", scene.Layers[i-1].Z, scene.Layers[i].Z)
		}
	}
}
