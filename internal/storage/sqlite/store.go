// Package sqlite provides a SQLite-backed game store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/parlor.games/internal/game"
	"github.com/louisbranch/parlor.games/internal/storage"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// The full state snapshot lives in a JSON column; the columns alongside it
// exist for lookups and the version CAS, never as a second source of truth.
const schema = `
CREATE TABLE IF NOT EXISTS games (
    id         TEXT PRIMARY KEY,
    game_type  TEXT NOT NULL,
    lifecycle  TEXT NOT NULL,
    version    INTEGER NOT NULL,
    state      TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_games_type_lifecycle ON games (game_type, lifecycle);
`

// Store persists game state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite game store and bootstraps the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Save inserts one game record.
func (s *Store) Save(ctx context.Context, state game.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(state.ID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (id, game_type, lifecycle, version, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		state.Type,
		state.Lifecycle.String(),
		state.Version,
		string(encoded),
		toMillis(state.CreatedAt),
		toMillis(state.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// Get returns one game by id.
func (s *Store) Get(ctx context.Context, gameID string) (game.GameState, error) {
	if err := ctx.Err(); err != nil {
		return game.GameState{}, err
	}
	if s == nil || s.sqlDB == nil {
		return game.GameState{}, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.GameState{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT state FROM games WHERE id = ?`, gameID)

	var encoded string
	if err := row.Scan(&encoded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.GameState{}, storage.ErrNotFound
		}
		return game.GameState{}, fmt.Errorf("get game: %w", err)
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(encoded), &state); err != nil {
		return game.GameState{}, fmt.Errorf("decode game state: %w", err)
	}
	return state, nil
}

// Update replaces a game's snapshot only when the persisted version still
// equals expectedVersion. The guard lives in the WHERE clause so the
// compare and the swap are one statement.
func (s *Store) Update(ctx context.Context, state game.GameState, expectedVersion uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(state.ID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE games
		    SET game_type = ?, lifecycle = ?, version = ?, state = ?, updated_at = ?
		  WHERE id = ? AND version = ?`,
		state.Type,
		state.Lifecycle.String(),
		state.Version,
		string(encoded),
		toMillis(state.UpdatedAt),
		gameID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game rows affected: %w", err)
	}
	if affected == 0 {
		// Distinguish a lost race from a missing game.
		row := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID)
		var one int
		if scanErr := row.Scan(&one); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("update game existence check: %w", scanErr)
		}
		return storage.ErrVersionConflict
	}
	return nil
}

// Delete removes one game by id.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	code := sqlErr.Code()
	return code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
}
