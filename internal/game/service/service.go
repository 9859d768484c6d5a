// Package service orchestrates the move pipeline: per-game locking, state
// loading, engine dispatch, validation, apply and compare-and-swap
// persistence, in that fixed order.
package service

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/parlor.games/internal/game"
	apperrors "github.com/louisbranch/parlor.games/internal/platform/errors"
	"github.com/louisbranch/parlor.games/internal/storage"
)

const tracerName = "github.com/louisbranch/parlor.games/internal/game/service"

// Service exposes the game operations to the control surface. All methods
// are safe for concurrent use; submissions racing on the same game are
// serialized by a per-game FIFO lock and double-checked by the store's
// version compare-and-swap.
type Service struct {
	registry *game.Registry
	store    storage.Store
	locks    *KeyedLock
	sink     CompletionSink
	tracer   trace.Tracer
	clock    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCompletionSink routes completion events to sink.
func WithCompletionSink(sink CompletionSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithLockTimeout bounds the per-game lock wait.
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.locks = NewKeyedLock(timeout) }
}

// WithClock injects the timestamp source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// New creates a game service over the given registry and store.
func New(registry *game.Registry, store storage.Store, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		store:    store,
		locks:    NewKeyedLock(DefaultLockTimeout),
		tracer:   otel.Tracer(tracerName),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGame initializes and persists a new game of the given type.
func (s *Service) CreateGame(ctx context.Context, gameType string, players []game.Player, cfg game.Config) (game.GameState, error) {
	ctx, span := s.tracer.Start(ctx, "CreateGame",
		trace.WithAttributes(attribute.String("game.type", gameType)))
	defer span.End()

	engine, err := s.registry.Get(gameType)
	if err != nil {
		return game.GameState{}, err
	}
	state, err := engine.Initialize(players, cfg)
	if err != nil {
		return game.GameState{}, err
	}
	if err := s.store.Save(ctx, state); err != nil {
		return game.GameState{}, err
	}

	log.Printf("game created game_id=%s game_type=%s players=%d", state.ID, state.Type, len(state.Players))
	return state, nil
}

// GetState loads a game by id.
func (s *Service) GetState(ctx context.Context, gameID string) (game.GameState, error) {
	return s.store.Get(ctx, gameID)
}

// SubmitMove runs one move through the pipeline. observedVersion is the
// version the caller last saw; zero means the caller did not track one and
// accepts the freshly loaded version. Once the per-game lock is held the
// pipeline runs to completion, success or terminal error.
func (s *Service) SubmitMove(ctx context.Context, gameID, playerID string, mv game.Move, observedVersion uint64) (game.GameState, error) {
	ctx, span := s.tracer.Start(ctx, "SubmitMove", trace.WithAttributes(
		attribute.String("game.id", gameID),
		attribute.String("game.player_id", playerID),
		attribute.String("game.action", mv.Action),
	))
	defer span.End()

	if err := s.locks.Acquire(ctx, gameID); err != nil {
		return game.GameState{}, err
	}
	defer s.locks.Release(gameID)

	state, err := s.store.Get(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}

	if observedVersion != 0 && observedVersion != state.Version {
		return game.GameState{}, storage.ErrVersionConflict
	}
	if !state.HasPlayer(playerID) {
		return game.GameState{}, game.ErrNotParticipant
	}
	if state.Lifecycle != game.LifecycleActive {
		return game.GameState{}, game.ErrGameNotActive
	}

	engine, err := s.registry.Get(state.Type)
	if err != nil {
		// A persisted game whose type no one registered is corrupt state,
		// not a caller mistake.
		return game.GameState{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "persisted game has an unregistered type", err)
	}

	mv.PlayerID = playerID
	if mv.Timestamp.IsZero() {
		mv.Timestamp = s.clock().UTC()
	}

	if result := engine.ValidateMove(state, playerID, mv); !result.Valid {
		return game.GameState{}, apperrors.WithMetadata(
			apperrors.CodeMoveValidationFailed,
			result.Reason,
			map[string]string{"game_id": gameID, "player_id": playerID, "action": mv.Action},
		)
	}

	next, err := engine.ApplyMove(state, playerID, mv)
	if err != nil {
		return game.GameState{}, err
	}
	if next.Version != state.Version+1 {
		return game.GameState{}, apperrors.New(apperrors.CodeInvariantViolation, "apply did not advance the version by one")
	}

	if err := s.store.Update(ctx, next, state.Version); err != nil {
		return game.GameState{}, err
	}

	log.Printf("move applied game_id=%s player_id=%s action=%s version=%d", gameID, playerID, mv.Action, next.Version)

	if next.Lifecycle == game.LifecycleCompleted && s.sink != nil {
		s.sink.GameCompleted(ctx, Completion{
			GameID:     next.ID,
			GameType:   next.Type,
			Players:    append([]game.Player(nil), next.Players...),
			WinnerID:   next.WinnerID,
			MoveCount:  len(next.History),
			FinishedAt: next.UpdatedAt,
		})
		log.Printf("game completed game_id=%s winner_id=%s moves=%d", next.ID, next.WinnerID, len(next.History))
	}
	return next, nil
}
