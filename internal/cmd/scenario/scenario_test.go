package scenario

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GameType != "tictactoe" {
		t.Fatalf("expected default game type tictactoe, got %q", cfg.GameType)
	}
	if cfg.Games != 1 {
		t.Fatalf("expected default of 1 game, got %d", cfg.Games)
	}
	if cfg.StorePath != "" {
		t.Fatalf("expected in-memory store default, got %q", cfg.StorePath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-game-type", "dicescore", "-games", "3", "-seed", "42"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GameType != "dicescore" {
		t.Fatalf("expected game type override, got %q", cfg.GameType)
	}
	if cfg.Games != 3 || cfg.Seed != 42 {
		t.Fatalf("expected 3 games at seed 42, got %d at %d", cfg.Games, cfg.Seed)
	}
}

func TestRunTicTacToe(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{GameType: "tictactoe", Games: 2, Seed: 7}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d output lines, want 2 games and a summary:\n%s", len(lines), out.String())
	}
	for _, line := range lines[:2] {
		if !strings.Contains(line, "type=tictactoe") {
			t.Fatalf("unexpected game line %q", line)
		}
	}
	if lines[2] != "completed=2" {
		t.Fatalf("summary = %q, want completed=2", lines[2])
	}
}

func TestRunDiceScoreWithSqliteStore(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		GameType:  "dicescore",
		Games:     1,
		Seed:      42,
		StorePath: filepath.Join(t.TempDir(), "scenario.db"),
	}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "type=dicescore") {
		t.Fatalf("output missing dicescore game line:\n%s", out.String())
	}
}

func TestRunRejectsUnknownGameType(t *testing.T) {
	cfg := Config{GameType: "chess", Games: 1}
	if err := Run(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected an error for an unregistered game type")
	}
}
