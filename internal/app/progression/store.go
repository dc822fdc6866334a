package progression

import (
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// Store is the durable-storage collaborator the engine drives. The
// engine owns no persistence of its own; implementations must provide
// the atomicity noted per method.
type Store interface {
	StatsLookup

	// LoadUser returns the progression record or domain.ErrUserNotFound.
	LoadUser(userID string) (*domain.UserProgression, error)

	// SaveUser writes the record back, guarded by the record's Version.
	// A concurrent modification surfaces as domain.ErrConflict and the
	// caller retries the whole orchestration from a fresh load.
	SaveUser(u *domain.UserProgression) error

	// CreateUser inserts a fresh record or returns domain.ErrUserExists.
	CreateUser(u *domain.UserProgression) error

	// RecordWorkout appends to the completion log. Returns false when the
	// workout id was already logged (duplicate delivery).
	RecordWorkout(rec domain.WorkoutRecord) (bool, error)

	// DeleteWorkout removes one log row. Compensation for a run that
	// failed after its append, so the event stays retryable.
	DeleteWorkout(workoutID string) error

	// CountWorkoutsOnDay counts completions on the given calendar day,
	// excluding one workout id (so a just-logged row does not count
	// against its own first-of-day check).
	CountWorkoutsOnDay(userID string, day time.Time, excludeWorkoutID string) (int64, error)

	// UnlockedAchievementIDs returns the set of already-unlocked ids.
	UnlockedAchievementIDs(userID string) (map[string]bool, error)

	// InsertUnlockIfAbsent records an unlock exactly once. Returns true
	// only for the insert that actually created the row.
	InsertUnlockIfAbsent(userID, achievementID string, now time.Time) (bool, error)

	// UpsertLeaderboard atomically folds deltas into the week's bucket,
	// creating it with weeklyWorkouts=1 on first activity.
	UpsertLeaderboard(userID string, weekStart time.Time, xpDelta, minutesDelta int64) error

	// WeeklyLeaderboard returns a week's entries ordered by weekly XP
	// descending, ties broken by insertion order.
	WeeklyLeaderboard(weekStart time.Time, limit int) ([]domain.LeaderboardEntry, error)
}
