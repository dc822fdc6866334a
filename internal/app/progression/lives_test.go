package progression_test

import (
	"testing"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/app/progression"
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Lives Manager Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLives_DeductFromFull(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	now := day(2026, 7, 1, 12)

	res := progression.DeductLife(u, now)
	if res.LivesRemaining != 4 || !res.CanContinue {
		t.Errorf("deduct: got %+v, want 4 lives, can continue", res)
	}
	if !u.LivesRefillAt.IsZero() {
		t.Error("refill deadline should not be armed above zero lives")
	}
}

func TestLives_FloorAtZero(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	now := day(2026, 7, 1, 12)

	var res progression.LivesResult
	for i := 0; i < 10; i++ {
		res = progression.DeductLife(u, now)
	}
	if res.LivesRemaining != 0 {
		t.Errorf("lives = %d, want 0 (floor)", res.LivesRemaining)
	}
	if res.CanContinue {
		t.Error("cannot continue at 0 lives")
	}
}

func TestLives_RefillArmedOnceAtZero(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	now := day(2026, 7, 1, 12)

	for i := 0; i < domain.MaxLives; i++ {
		progression.DeductLife(u, now.Add(time.Duration(i)*time.Minute))
	}
	armed := u.LivesRefillAt
	if armed.IsZero() {
		t.Fatal("refill deadline should be armed at 0 lives")
	}

	// Deducting while empty must not reset the timer.
	progression.DeductLife(u, now.Add(time.Hour))
	if !u.LivesRefillAt.Equal(armed) {
		t.Error("refill deadline moved on deduct-while-empty")
	}
}

func TestLives_RestoreAfterDeadline(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	now := day(2026, 7, 1, 12)
	u.LivesRemaining = 0
	u.LivesRefillAt = now.Add(-time.Second)

	got := progression.CheckAndRestoreLives(u, now)
	if got != domain.MaxLives {
		t.Errorf("restore = %d, want %d", got, domain.MaxLives)
	}
	if !u.LivesRefillAt.IsZero() {
		t.Error("refill deadline should be cleared after restore")
	}
}

func TestLives_NoRestoreBeforeDeadline(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	now := day(2026, 7, 1, 12)
	u.LivesRemaining = 0
	u.LivesRefillAt = now.Add(10 * time.Minute)

	got := progression.CheckAndRestoreLives(u, now)
	if got != 0 {
		t.Errorf("restore = %d, want 0 (deadline not reached)", got)
	}
}

func TestLives_PartialPoolWithoutDeadlineStays(t *testing.T) {
	// A partially drained pool with no armed deadline never refills; the
	// deadline is only armed at exhaustion.
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	u.LivesRemaining = 2

	got := progression.CheckAndRestoreLives(u, day(2026, 7, 2, 12))
	if got != 2 {
		t.Errorf("lives = %d, want 2 unchanged", got)
	}
}
