package progression

import (
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// StreakResult describes how one completion moved the streak.
type StreakResult struct {
	NewStreak  int
	Increased  bool
	Maintained bool
}

// dateOnly truncates a timestamp to its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthKey returns "YYYY-MM" for the freeze counter's calendar month.
func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// AdvanceStreak applies one workout completion to the user's streak state.
// It mutates only the streak-owned fields of u: CurrentStreak,
// LongestStreak, LastWorkoutAt, and a consumed FreezeDay.
//
//   - No prior workout: streak starts at 1.
//   - Same calendar day: no change (a second workout never double-counts).
//   - Previous day: streak extends by 1.
//   - Older: the streak resets to 1, unless a freeze was applied in
//     advance to cover exactly one missed day, in which case the streak
//     is preserved unchanged. Freezes are proactive only: a gap that was
//     not pre-covered always resets, and no freeze use is refunded.
func AdvanceStreak(u *domain.UserProgression, now time.Time) StreakResult {
	today := dateOnly(now)

	var res StreakResult
	switch {
	case u.LastWorkoutAt.IsZero():
		res = StreakResult{NewStreak: 1, Increased: true}

	case dateOnly(u.LastWorkoutAt).Equal(today):
		res = StreakResult{NewStreak: u.CurrentStreak, Maintained: true}

	case dateOnly(u.LastWorkoutAt).Equal(today.AddDate(0, 0, -1)):
		res = StreakResult{NewStreak: u.CurrentStreak + 1, Increased: true}

	default:
		lastDay := dateOnly(u.LastWorkoutAt)
		missed := lastDay.AddDate(0, 0, 1)
		oneMissedDay := missed.Equal(today.AddDate(0, 0, -1))
		if oneMissedDay && !u.FreezeDay.IsZero() && dateOnly(u.FreezeDay).Equal(missed) {
			// Freeze covered the single missed day; streak survives.
			res = StreakResult{NewStreak: u.CurrentStreak, Maintained: true}
		} else {
			res = StreakResult{NewStreak: 1, Increased: true}
		}
	}

	u.CurrentStreak = res.NewStreak
	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
	u.LastWorkoutAt = now
	// A freeze only ever covers the one gap it was bought for.
	if !u.FreezeDay.IsZero() && dateOnly(u.FreezeDay).Before(today) {
		u.FreezeDay = time.Time{}
	}
	return res
}

// UseStreakFreeze marks the current day as streak-protected so that the
// next gap detection forgives it. Capped at MaxFreezesPerMonth per
// calendar month; the counter rolls over with the month. Returns false
// (a policy outcome, not an error) when the cap is reached.
func UseStreakFreeze(u *domain.UserProgression, now time.Time) bool {
	month := monthKey(now)
	if u.FreezeMonth != month {
		u.FreezeMonth = month
		u.FreezeUses = 0
	}
	if u.FreezeUses >= domain.MaxFreezesPerMonth {
		return false
	}
	u.FreezeUses++
	u.FreezeDay = dateOnly(now)
	return true
}
