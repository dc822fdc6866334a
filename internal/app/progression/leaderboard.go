package progression

import (
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// WeekStart normalizes a timestamp to the Monday 00:00 UTC of its ISO
// week. All leaderboard rows are keyed by this value.
func WeekStart(t time.Time) time.Time {
	day := dateOnly(t)
	// time.Weekday: Sunday=0 ... Saturday=6; ISO weeks start on Monday.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// recordActivity folds one completion into the user's bucket for the
// event's week. The storage upsert is an atomic increment, so racing
// events from different users never lose updates.
func (s *Service) recordActivity(userID string, xpGained int64, minutes int64, now time.Time) error {
	return s.store.UpsertLeaderboard(userID, WeekStart(now), xpGained, minutes)
}

// WeeklyLeaderboard returns the current week's standings, sorted by
// weekly XP descending with ties broken by insertion order, truncated
// to limit.
func (s *Service) WeeklyLeaderboard(now time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.store.WeeklyLeaderboard(WeekStart(now), limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
