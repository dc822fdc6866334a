package progression

import (
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// LivesResult is the outcome of a life deduction.
type LivesResult struct {
	LivesRemaining int
	CanContinue    bool
}

// DeductLife removes one heart, flooring at zero. The refill deadline is
// armed exactly once, when the pool first hits zero; deducting while
// already empty never resets the timer.
func DeductLife(u *domain.UserProgression, now time.Time) LivesResult {
	if u.LivesRemaining > 0 {
		u.LivesRemaining--
		if u.LivesRemaining == 0 && u.LivesRefillAt.IsZero() {
			u.LivesRefillAt = now.Add(domain.LivesRefillDelay)
		}
	}
	return LivesResult{
		LivesRemaining: u.LivesRemaining,
		CanContinue:    u.LivesRemaining > 0,
	}
}

// CheckAndRestoreLives restores the full pool once the refill deadline
// has elapsed. It is a pure function of wall-clock time and is meant to
// be called lazily before any life-affecting operation or read; a missed
// check only delays observation, never loses a refill.
func CheckAndRestoreLives(u *domain.UserProgression, now time.Time) int {
	if u.LivesRemaining == domain.MaxLives {
		return u.LivesRemaining
	}
	if !u.LivesRefillAt.IsZero() && !now.Before(u.LivesRefillAt) {
		u.LivesRemaining = domain.MaxLives
		u.LivesRefillAt = time.Time{}
	}
	return u.LivesRemaining
}
