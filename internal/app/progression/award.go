package progression

import (
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// AwardXP computes the XP earned for one completed workout.
//
// firstOfDay is whether this is the user's first completion of the
// calendar day, and streak is the streak value the workout's own streak
// update produces (a 3rd consecutive day earns the 3-day tier). Exactly
// one streak tier applies, the highest qualifying one. The function has
// no side effects; it never touches counters or streak state.
func AwardXP(ev domain.WorkoutEvent, firstOfDay bool, streak int, rules domain.RuleTable) int64 {
	xp := rules.Amount(domain.ActivityWorkoutComplete)

	if ev.DurationSeconds > 0 {
		xp += rules.Amount(domain.ActivityDurationBonus) * int64(ev.Minutes())
	}
	if ev.Perfect() {
		xp += rules.Amount(domain.ActivityPerfectWorkout)
	}
	if firstOfDay {
		xp += rules.Amount(domain.ActivityFirstDaily)
	}

	switch {
	case streak >= 30:
		xp += rules.Amount(domain.ActivityStreakTier30)
	case streak >= 7:
		xp += rules.Amount(domain.ActivityStreakTier7)
	case streak >= 3:
		xp += rules.Amount(domain.ActivityStreakTier3)
	}

	if xp < 0 {
		xp = 0
	}
	return xp
}
