package sqlite

import (
	"fmt"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ─── Completion Log ─────────────────────────────────────────────────────────

// RecordWorkout appends one completion to the log. Returns false when
// the workout id was already logged (duplicate delivery); the insert
// is idempotent.
func (d *DB) RecordWorkout(rec domain.WorkoutRecord) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO workouts (id, user_id, category, duration_seconds, perfect, completed_at, day)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.WorkoutID, rec.UserID, string(rec.Category), rec.DurationSeconds,
		rec.Perfect, rec.CompletedAt.Unix(), dayKey(rec.CompletedAt),
	)
	if err != nil {
		return false, fmt.Errorf("record workout: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// DeleteWorkout removes one completion log row. Used to compensate a
// run that appended its row but never committed the user state.
func (d *DB) DeleteWorkout(workoutID string) error {
	_, err := d.db.Exec(`DELETE FROM workouts WHERE id = ?`, workoutID)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// CountWorkoutsOnDay counts one user's completions on a calendar day,
// excluding the given workout id.
func (d *DB) CountWorkoutsOnDay(userID string, day time.Time, excludeWorkoutID string) (int64, error) {
	var count int64
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM workouts WHERE user_id = ? AND day = ? AND id != ?`,
		userID, dayKey(day), excludeWorkoutID,
	).Scan(&count)
	return count, err
}

// CountCategoryWorkouts counts one user's completions in a category.
func (d *DB) CountCategoryWorkouts(userID string, category domain.WorkoutCategory) (int64, error) {
	var count int64
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM workouts WHERE user_id = ? AND category = ?`,
		userID, string(category),
	).Scan(&count)
	return count, err
}

// HasWorkoutOnEachOfLastDays reports whether each of the n most recent
// calendar days (ending at the day of now) has at least one completion.
// Computed from the log, not the streak, since a freeze lets the streak
// survive a day with no workout.
func (d *DB) HasWorkoutOnEachOfLastDays(userID string, n int, now time.Time) (bool, error) {
	if n <= 0 {
		return true, nil
	}
	today := now.UTC()
	first := today.AddDate(0, 0, -(n - 1))

	var distinct int64
	err := d.db.QueryRow(
		`SELECT COUNT(DISTINCT day) FROM workouts WHERE user_id = ? AND day >= ? AND day <= ?`,
		userID, dayKey(first), dayKey(today),
	).Scan(&distinct)
	if err != nil {
		return false, err
	}
	return distinct >= int64(n), nil
}
