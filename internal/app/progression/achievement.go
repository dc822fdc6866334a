package progression

import (
	"log"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// StatsLookup answers the achievement predicates that need workout
// history rather than counters on the progression record.
type StatsLookup interface {
	// CountCategoryWorkouts returns completed workouts in one category.
	CountCategoryWorkouts(userID string, category domain.WorkoutCategory) (int64, error)
	// HasWorkoutOnEachOfLastDays reports whether every one of the n most
	// recent calendar days (ending at the day of now) has a completion.
	HasWorkoutOnEachOfLastDays(userID string, n int, now time.Time) (bool, error)
}

// EvaluateAchievements compares post-update counters against the catalog
// and returns the definitions that newly became satisfied. Entries whose
// IDs appear in unlocked are skipped, which keeps evaluation idempotent.
//
// Lookup failures for history-backed predicates are treated as "not
// satisfied this run": achievement evaluation is best-effort and safe
// to re-run, so one failing query must never abort a completion.
func EvaluateAchievements(u *domain.UserProgression, catalog []domain.AchievementDef, unlocked map[string]bool, lookup StatsLookup, now time.Time) []domain.AchievementDef {
	var newly []domain.AchievementDef
	for _, def := range catalog {
		if unlocked[def.ID] {
			continue
		}
		if satisfied(u, def, lookup, now) {
			newly = append(newly, def)
		}
	}
	return newly
}

func satisfied(u *domain.UserProgression, def domain.AchievementDef, lookup StatsLookup, now time.Time) bool {
	switch def.Kind {
	case domain.PredTotalWorkouts:
		return u.TotalWorkouts >= def.Threshold
	case domain.PredCurrentStreak:
		return int64(u.CurrentStreak) >= def.Threshold
	case domain.PredExperiencePoints:
		return u.ExperiencePoints >= def.Threshold
	case domain.PredCurrentLevel:
		return int64(u.CurrentLevel) >= def.Threshold
	case domain.PredTotalMinutes:
		return u.TotalMinutes >= def.Threshold
	case domain.PredCategoryWorkouts:
		count, err := lookup.CountCategoryWorkouts(u.UserID, def.Category)
		if err != nil {
			log.Printf("[progression] category lookup %s/%s: %v", u.UserID, def.Category, err)
			return false
		}
		return count >= def.Threshold
	case domain.PredPerfectWeek:
		ok, err := lookup.HasWorkoutOnEachOfLastDays(u.UserID, 7, now)
		if err != nil {
			log.Printf("[progression] perfect week lookup %s: %v", u.UserID, err)
			return false
		}
		return ok
	default:
		return false
	}
}

// ─── Achievement Catalog ────────────────────────────────────────────────────
// Static read-only definitions. Predicates are the closed set of
// PredicateKinds; this is deliberately not a rules DSL.

// Catalog returns the full achievement catalog.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		// Milestones
		{ID: "first_workout", Name: "First Rep", Icon: "🎯", Kind: domain.PredTotalWorkouts, Threshold: 1},
		{ID: "workouts_10", Name: "Regular", Icon: "💪", Kind: domain.PredTotalWorkouts, Threshold: 10},
		{ID: "workouts_50", Name: "Dedicated", Icon: "🏋️", Kind: domain.PredTotalWorkouts, Threshold: 50},
		{ID: "workouts_100", Name: "Century Club", Icon: "💯", Kind: domain.PredTotalWorkouts, Threshold: 100},
		{ID: "workouts_500", Name: "Iron Will", Icon: "⚙️", Kind: domain.PredTotalWorkouts, Threshold: 500},

		// Streaks
		{ID: "streak_3", Name: "Warming Up", Icon: "🔥", Kind: domain.PredCurrentStreak, Threshold: 3},
		{ID: "streak_7", Name: "Week Warrior", Icon: "🔥", Kind: domain.PredCurrentStreak, Threshold: 7},
		{ID: "streak_30", Name: "Monthly Machine", Icon: "🗓️", Kind: domain.PredCurrentStreak, Threshold: 30},
		{ID: "streak_100", Name: "Centurion", Icon: "🏛️", Kind: domain.PredCurrentStreak, Threshold: 100},
		{ID: "perfect_week", Name: "Perfect Week", Icon: "⭐", Kind: domain.PredPerfectWeek, Threshold: 7},

		// Experience
		{ID: "xp_1000", Name: "Point Collector", Icon: "✨", Kind: domain.PredExperiencePoints, Threshold: 1000},
		{ID: "xp_5000", Name: "XP Hoarder", Icon: "💎", Kind: domain.PredExperiencePoints, Threshold: 5000},
		{ID: "level_5", Name: "Rising Star", Icon: "🌅", Kind: domain.PredCurrentLevel, Threshold: 5},
		{ID: "level_10", Name: "Veteran", Icon: "🎖️", Kind: domain.PredCurrentLevel, Threshold: 10},
		{ID: "level_25", Name: "Elite", Icon: "👑", Kind: domain.PredCurrentLevel, Threshold: 25},

		// Time on the mat
		{ID: "minutes_500", Name: "Time Served", Icon: "⏱️", Kind: domain.PredTotalMinutes, Threshold: 500},
		{ID: "minutes_2000", Name: "Marathoner", Icon: "🕰️", Kind: domain.PredTotalMinutes, Threshold: 2000},

		// Category specialists
		{ID: "strength_10", Name: "Powerhouse", Icon: "🏗️", Kind: domain.PredCategoryWorkouts, Threshold: 10, Category: domain.CategoryStrength},
		{ID: "cardio_10", Name: "Heart Racer", Icon: "🏃", Kind: domain.PredCategoryWorkouts, Threshold: 10, Category: domain.CategoryCardio},
		{ID: "flexibility_10", Name: "Bend Don't Break", Icon: "🧘", Kind: domain.PredCategoryWorkouts, Threshold: 10, Category: domain.CategoryFlexibility},
	}
}
