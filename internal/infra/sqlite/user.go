package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ─── User Progression ───────────────────────────────────────────────────────

const userColumns = `id, experience_points, current_level, xp_to_next_level,
	current_streak, longest_streak, last_workout_at,
	freeze_uses, freeze_month, freeze_day,
	lives_remaining, lives_refill_at,
	total_workouts, total_minutes, created_at, version`

// CreateUser inserts fresh progression state for an account.
func (d *DB) CreateUser(u *domain.UserProgression) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, experience_points, current_level, xp_to_next_level,
			current_streak, longest_streak, last_workout_at,
			freeze_uses, freeze_month, freeze_day,
			lives_remaining, lives_refill_at,
			total_workouts, total_minutes, created_at, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		u.UserID, u.ExperiencePoints, u.CurrentLevel, u.XPToNextLevel,
		u.CurrentStreak, u.LongestStreak, nullableUnix(u.LastWorkoutAt),
		u.FreezeUses, u.FreezeMonth, nullableUnix(u.FreezeDay),
		u.LivesRemaining, nullableUnix(u.LivesRefillAt),
		u.TotalWorkouts, u.TotalMinutes, u.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	u.Version = 0
	return nil
}

// LoadUser returns the progression record or domain.ErrUserNotFound.
func (d *DB) LoadUser(userID string) (*domain.UserProgression, error) {
	row := d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	return scanUser(row)
}

// SaveUser writes the record back guarded by its version. Zero rows
// updated means another writer won the race: domain.ErrConflict.
func (d *DB) SaveUser(u *domain.UserProgression) error {
	result, err := d.db.Exec(
		`UPDATE users SET
			experience_points = ?, current_level = ?, xp_to_next_level = ?,
			current_streak = ?, longest_streak = ?, last_workout_at = ?,
			freeze_uses = ?, freeze_month = ?, freeze_day = ?,
			lives_remaining = ?, lives_refill_at = ?,
			total_workouts = ?, total_minutes = ?,
			version = version + 1
		 WHERE id = ? AND version = ?`,
		u.ExperiencePoints, u.CurrentLevel, u.XPToNextLevel,
		u.CurrentStreak, u.LongestStreak, nullableUnix(u.LastWorkoutAt),
		u.FreezeUses, u.FreezeMonth, nullableUnix(u.FreezeDay),
		u.LivesRemaining, nullableUnix(u.LivesRefillAt),
		u.TotalWorkouts, u.TotalMinutes,
		u.UserID, u.Version,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		// Either the row vanished or the version moved under us.
		if _, loadErr := d.LoadUser(u.UserID); loadErr != nil {
			return loadErr
		}
		return domain.ErrConflict
	}
	u.Version++
	return nil
}

func scanUser(s scanner) (*domain.UserProgression, error) {
	var u domain.UserProgression
	var lastWorkout, freezeDay, refillAt sql.NullInt64
	var createdAt int64

	err := s.Scan(&u.UserID, &u.ExperiencePoints, &u.CurrentLevel, &u.XPToNextLevel,
		&u.CurrentStreak, &u.LongestStreak, &lastWorkout,
		&u.FreezeUses, &u.FreezeMonth, &freezeDay,
		&u.LivesRemaining, &refillAt,
		&u.TotalWorkouts, &u.TotalMinutes, &createdAt, &u.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.LastWorkoutAt = timeFromNullable(lastWorkout)
	u.FreezeDay = timeFromNullable(freezeDay)
	u.LivesRefillAt = timeFromNullable(refillAt)
	u.CreatedAt = timeFromNullable(sql.NullInt64{Int64: createdAt, Valid: true})
	return &u, nil
}

// isUniqueViolation detects a primary-key collision without depending
// on driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
