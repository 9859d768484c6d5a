// Package scenario parses scenario command flags and drives complete games
// through the service with the automated policies, verifying the full
// wiring without a network surface.
package scenario

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
	"github.com/louisbranch/parlor.games/internal/game/dicescore"
	"github.com/louisbranch/parlor.games/internal/game/service"
	"github.com/louisbranch/parlor.games/internal/game/tictactoe"
	entrypoint "github.com/louisbranch/parlor.games/internal/platform/cmd"
	"github.com/louisbranch/parlor.games/internal/storage"
	"github.com/louisbranch/parlor.games/internal/storage/memory"
	"github.com/louisbranch/parlor.games/internal/storage/sqlite"
)

// Config holds scenario command configuration.
type Config struct {
	GameType  string `env:"PARLOR_GAMES_SCENARIO_GAME_TYPE" envDefault:"tictactoe"`
	Games     int    `env:"PARLOR_GAMES_SCENARIO_GAMES" envDefault:"1"`
	Seed      int64  `env:"PARLOR_GAMES_SCENARIO_SEED"`
	StorePath string `env:"PARLOR_GAMES_SCENARIO_STORE_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.GameType, "game-type", cfg.GameType, "game type to run (tictactoe or dicescore)")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of games to play")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for deterministic runs (0 = random)")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "sqlite database path (empty = in-memory store)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays the configured games through the service.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		store, err := openStore(cfg.StorePath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				fmt.Fprintf(out, "close store: %v\n", cerr)
			}
		}()

		registry := game.NewRegistry()
		if err := registry.Register(tictactoe.New()); err != nil {
			return err
		}
		if err := registry.Register(dicescore.New()); err != nil {
			return err
		}

		recorder := &service.Recorder{}
		svc := service.New(registry, store, service.WithCompletionSink(recorder))

		for i := 0; i < cfg.Games; i++ {
			seed := cfg.Seed
			if seed != 0 {
				seed += int64(i)
			}
			final, err := playGame(ctx, svc, cfg.GameType, seed)
			if err != nil {
				return fmt.Errorf("play game %d: %w", i+1, err)
			}
			fmt.Fprintf(out, "game=%s type=%s moves=%d winner=%s\n",
				final.ID, final.Type, len(final.History), winnerName(final))
		}

		fmt.Fprintf(out, "completed=%d\n", len(recorder.Events()))
		return nil
	})
}

func openStore(path string) (storage.Store, error) {
	if path == "" {
		return memory.New(), nil
	}
	return sqlite.Open(path)
}

// playGame creates one game and submits policy moves until it completes.
func playGame(ctx context.Context, svc *service.Service, gameType string, seed int64) (game.GameState, error) {
	players := []game.Player{
		{ID: "p1", Name: "Ada", JoinedAt: time.Now().UTC()},
		{ID: "p2", Name: "Grace", JoinedAt: time.Now().UTC()},
	}
	state, err := svc.CreateGame(ctx, gameType, players, game.Config{Seed: seed})
	if err != nil {
		return game.GameState{}, err
	}

	policies, err := policiesFor(gameType, seed)
	if err != nil {
		return game.GameState{}, err
	}

	// Upper bound on legal moves for either game type, so a rules bug
	// cannot loop forever.
	for moves := 0; moves <= 2*13*4; moves++ {
		if state.Lifecycle != game.LifecycleActive {
			return state, nil
		}
		current, err := state.CurrentPlayer()
		if err != nil {
			return game.GameState{}, err
		}
		mv, err := policies[current.ID].ChooseMove(state, current.ID)
		if err != nil {
			return game.GameState{}, err
		}
		state, err = svc.SubmitMove(ctx, state.ID, current.ID, mv, state.Version)
		if err != nil {
			return game.GameState{}, err
		}
	}
	return game.GameState{}, fmt.Errorf("game %s did not finish within the move bound", state.ID)
}

// mover is the shared shape of both engines' policies.
type mover interface {
	ChooseMove(state game.GameState, playerID string) (game.Move, error)
}

func policiesFor(gameType string, seed int64) (map[string]mover, error) {
	switch gameType {
	case tictactoe.GameType:
		return map[string]mover{
			"p1": tictactoe.RulePolicy{},
			"p2": tictactoe.NewRandomPolicy(seed + 1),
		}, nil
	case dicescore.GameType:
		return map[string]mover{
			"p1": dicescore.GreedyPolicy{},
			"p2": dicescore.GreedyPolicy{},
		}, nil
	}
	return nil, fmt.Errorf("no policies for game type %q", gameType)
}

func winnerName(state game.GameState) string {
	if state.WinnerID == "" {
		return "none"
	}
	for _, p := range state.Players {
		if p.ID == state.WinnerID {
			return p.Name
		}
	}
	return state.WinnerID
}
