// Package errors provides structured error handling for the game service.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game errors
	CodeGameTypeUnknown        Code = "GAME_TYPE_UNKNOWN"
	CodeGameInvalidPlayerCount Code = "GAME_INVALID_PLAYER_COUNT"
	CodeGameNotActive          Code = "GAME_NOT_ACTIVE"
	CodeGameLockTimeout        Code = "GAME_LOCK_TIMEOUT"

	// Move errors
	CodeMoveValidationFailed Code = "MOVE_VALIDATION_FAILED"
	CodeMoveActorNotPlaying  Code = "MOVE_ACTOR_NOT_PLAYING"

	// Storage errors
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeVersionConflict Code = "VERSION_CONFLICT"

	// Invariant errors
	CodeInvariantViolation Code = "STATE_INVARIANT_VIOLATION"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeGameTypeUnknown,
		CodeGameInvalidPlayerCount,
		CodeMoveValidationFailed:
		return codes.InvalidArgument

	// FailedPrecondition - the request is well-formed but the game state disallows it
	case CodeGameNotActive:
		return codes.FailedPrecondition

	// PermissionDenied - the actor is not allowed to act on this game
	case CodeMoveActorNotPlaying:
		return codes.PermissionDenied

	// NotFound
	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists
	case CodeAlreadyExists:
		return codes.AlreadyExists

	// Aborted - retryable concurrency failures
	case CodeVersionConflict, CodeGameLockTimeout:
		return codes.Aborted

	// Internal - broken invariants, infrastructure failures
	case CodeInvariantViolation, CodeSeedUnavailable:
		return codes.Internal
	}
	return codes.Unknown
}

// Retryable reports whether a caller may safely retry the failed request
// after reloading current state. Only concurrency-class failures qualify;
// validation and permission failures are terminal for the request.
func (c Code) Retryable() bool {
	switch c {
	case CodeVersionConflict, CodeGameLockTimeout:
		return true
	}
	return false
}
