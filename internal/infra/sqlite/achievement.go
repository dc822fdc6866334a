package sqlite

import (
	"fmt"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ─── Achievement Unlocks ────────────────────────────────────────────────────

// InsertUnlockIfAbsent records an unlock exactly once per (user,
// achievement) pair. Returns true only when this call created the row,
// so a racing duplicate evaluation cannot double-unlock.
func (d *DB) InsertUnlockIfAbsent(userID, achievementID string, now time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievement_unlocks (user_id, achievement_id, unlocked_at) VALUES (?, ?, ?)`,
		userID, achievementID, now.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("insert unlock: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// UnlockedAchievementIDs returns the set of achievement ids the user
// has already earned.
func (d *DB) UnlockedAchievementIDs(userID string) (map[string]bool, error) {
	rows, err := d.db.Query(
		`SELECT achievement_id FROM achievement_unlocks WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ListUnlocks returns a user's unlock facts, most recent first.
func (d *DB) ListUnlocks(userID string) ([]domain.AchievementUnlock, error) {
	rows, err := d.db.Query(
		`SELECT user_id, achievement_id, unlocked_at FROM achievement_unlocks
		 WHERE user_id = ? ORDER BY unlocked_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []domain.AchievementUnlock
	for rows.Next() {
		var a domain.AchievementUnlock
		var unlockedAt int64
		if err := rows.Scan(&a.UserID, &a.AchievementID, &unlockedAt); err != nil {
			return nil, err
		}
		a.UnlockedAt = time.Unix(unlockedAt, 0).UTC()
		unlocks = append(unlocks, a)
	}
	return unlocks, rows.Err()
}
