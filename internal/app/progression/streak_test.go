package progression_test

import (
	"testing"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/app/progression"
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tracker Tests
// ═══════════════════════════════════════════════════════════════════════════

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestStreak_FirstWorkout(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	res := progression.AdvanceStreak(u, day(2026, 7, 1, 12))
	if res.NewStreak != 1 || !res.Increased {
		t.Errorf("first workout: got %+v, want streak 1 increased", res)
	}
	if u.LongestStreak != 1 {
		t.Errorf("longest = %d, want 1", u.LongestStreak)
	}
}

func TestStreak_SameDayIdempotent(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	progression.AdvanceStreak(u, day(2026, 7, 1, 9))
	res := progression.AdvanceStreak(u, day(2026, 7, 1, 21)) // Same day, later

	if res.NewStreak != 1 || res.Increased || !res.Maintained {
		t.Errorf("same day: got %+v, want streak 1 maintained", res)
	}
	if u.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1 (idempotent)", u.CurrentStreak)
	}
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	for i := 0; i < 5; i++ {
		progression.AdvanceStreak(u, day(2026, 7, 1+i, 12))
	}
	if u.CurrentStreak != 5 {
		t.Errorf("streak = %d, want 5", u.CurrentStreak)
	}
	if u.LongestStreak != 5 {
		t.Errorf("longest = %d, want 5", u.LongestStreak)
	}
}

func TestStreak_MidnightBoundary(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	// 23:30 then 00:30 next day are consecutive calendar days.
	progression.AdvanceStreak(u, time.Date(2026, 7, 1, 23, 30, 0, 0, time.UTC))
	res := progression.AdvanceStreak(u, time.Date(2026, 7, 2, 0, 30, 0, 0, time.UTC))

	if res.NewStreak != 2 || !res.Increased {
		t.Errorf("midnight boundary: got %+v, want streak 2 increased", res)
	}
}

func TestStreak_GapResets(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	progression.AdvanceStreak(u, day(2026, 7, 1, 12))
	progression.AdvanceStreak(u, day(2026, 7, 2, 12))
	progression.AdvanceStreak(u, day(2026, 7, 3, 12))

	// 3-day gap, no freeze.
	res := progression.AdvanceStreak(u, day(2026, 7, 6, 12))

	if res.NewStreak != 1 || res.Maintained {
		t.Errorf("gap: got %+v, want streak reset to 1, not maintained", res)
	}
	if u.LongestStreak != 3 {
		t.Errorf("longest = %d, want 3 preserved", u.LongestStreak)
	}
}

func TestStreak_FreezeForgivesOneMissedDay(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	progression.AdvanceStreak(u, day(2026, 7, 1, 12))
	progression.AdvanceStreak(u, day(2026, 7, 2, 12))

	// Buy a freeze covering July 3rd, then skip it.
	if !progression.UseStreakFreeze(u, day(2026, 7, 3, 9)) {
		t.Fatal("freeze should be available")
	}
	res := progression.AdvanceStreak(u, day(2026, 7, 4, 12))

	if res.NewStreak != 2 || !res.Maintained {
		t.Errorf("frozen gap: got %+v, want streak 2 maintained", res)
	}
}

func TestStreak_FreezeDoesNotCoverTwoMissedDays(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	progression.AdvanceStreak(u, day(2026, 7, 1, 12))
	progression.AdvanceStreak(u, day(2026, 7, 2, 12))
	progression.UseStreakFreeze(u, day(2026, 7, 3, 9))

	// Two missed days (3rd and 4th); one freeze is not enough.
	res := progression.AdvanceStreak(u, day(2026, 7, 5, 12))

	if res.NewStreak != 1 {
		t.Errorf("two missed days: got streak %d, want reset to 1", res.NewStreak)
	}
}

func TestStreak_FreezeForWrongDayDoesNotApply(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	progression.AdvanceStreak(u, day(2026, 7, 1, 12))
	progression.AdvanceStreak(u, day(2026, 7, 2, 12))
	// Freeze bought for the 2nd (already worked out), then the 3rd is missed.
	progression.UseStreakFreeze(u, day(2026, 7, 2, 20))

	res := progression.AdvanceStreak(u, day(2026, 7, 4, 12))
	if res.NewStreak != 1 {
		t.Errorf("freeze on wrong day: got streak %d, want reset to 1", res.NewStreak)
	}
}

func TestFreeze_MonthlyCap(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	for i := 0; i < domain.MaxFreezesPerMonth; i++ {
		if !progression.UseStreakFreeze(u, day(2026, 7, 5+i, 10)) {
			t.Fatalf("freeze %d should succeed", i+1)
		}
	}
	if progression.UseStreakFreeze(u, day(2026, 7, 20, 10)) {
		t.Error("4th freeze in one month should fail")
	}
}

func TestFreeze_CounterResetsNextMonth(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	for i := 0; i < domain.MaxFreezesPerMonth; i++ {
		progression.UseStreakFreeze(u, day(2026, 7, 5+i, 10))
	}
	if !progression.UseStreakFreeze(u, day(2026, 8, 1, 10)) {
		t.Error("freeze should be available again in a new month")
	}
	if u.FreezeUses != 1 {
		t.Errorf("FreezeUses = %d, want 1 after month rollover", u.FreezeUses)
	}
}
