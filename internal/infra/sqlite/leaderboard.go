package sqlite

import (
	"fmt"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ─── Weekly Leaderboard ─────────────────────────────────────────────────────

// UpsertLeaderboard folds one completion's deltas into the (user, week)
// bucket. The increment happens inside the statement, never as a
// read-then-write, so racing events from different users are safe.
func (d *DB) UpsertLeaderboard(userID string, weekStart time.Time, xpDelta, minutesDelta int64) error {
	_, err := d.db.Exec(
		`INSERT INTO leaderboard (user_id, week_start, weekly_xp, weekly_workouts, weekly_minutes)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(user_id, week_start) DO UPDATE SET
			weekly_xp       = weekly_xp + excluded.weekly_xp,
			weekly_workouts = weekly_workouts + 1,
			weekly_minutes  = weekly_minutes + excluded.weekly_minutes`,
		userID, weekStart.Unix(), xpDelta, minutesDelta,
	)
	if err != nil {
		return fmt.Errorf("upsert leaderboard: %w", err)
	}
	return nil
}

// WeeklyLeaderboard returns one week's entries ordered by weekly XP
// descending. rowid ascending breaks ties by insertion order.
func (d *DB) WeeklyLeaderboard(weekStart time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := d.db.Query(
		`SELECT user_id, week_start, weekly_xp, weekly_workouts, weekly_minutes
		 FROM leaderboard WHERE week_start = ?
		 ORDER BY weekly_xp DESC, rowid ASC LIMIT ?`,
		weekStart.Unix(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		var ws int64
		if err := rows.Scan(&e.UserID, &ws, &e.WeeklyXP, &e.WeeklyWorkouts, &e.WeeklyMinutes); err != nil {
			return nil, err
		}
		e.WeekStart = time.Unix(ws, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
