package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency.

var (
	// ErrUserNotFound means the progression record does not exist.
	// Fatal for a completion run; nothing is mutated.
	ErrUserNotFound = errors.New("user progression not found")

	// ErrUserExists is returned when creating a user that already has state.
	ErrUserExists = errors.New("user progression already exists")

	// ErrConflict signals a concurrent modification detected at save time.
	// The orchestration is deterministic given a fresh snapshot, so the
	// caller retries the whole run.
	ErrConflict = errors.New("concurrent modification detected")

	// ErrInvalidEvent means the completion event failed validation.
	ErrInvalidEvent = errors.New("invalid workout completion event")

	// ErrDuplicateWorkout means this workout id was already processed.
	// A duplicate client retry must not award XP twice.
	ErrDuplicateWorkout = errors.New("workout already recorded")
)
