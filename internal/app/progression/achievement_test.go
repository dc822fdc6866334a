package progression_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/app/progression"
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// stubLookup answers history predicates from fixed values.
type stubLookup struct {
	categoryCounts map[domain.WorkoutCategory]int64
	perfectWeek    bool
	err            error
}

func (s stubLookup) CountCategoryWorkouts(userID string, category domain.WorkoutCategory) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.categoryCounts[category], nil
}

func (s stubLookup) HasWorkoutOnEachOfLastDays(userID string, n int, now time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.perfectWeek, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestAchievements_CounterThresholds(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	u.TotalWorkouts = 10
	u.CurrentStreak = 3

	newly := progression.EvaluateAchievements(u, progression.Catalog(), map[string]bool{}, stubLookup{}, day(2026, 7, 1, 12))

	got := map[string]bool{}
	for _, def := range newly {
		got[def.ID] = true
	}
	for _, want := range []string{"first_workout", "workouts_10", "streak_3"} {
		if !got[want] {
			t.Errorf("expected %s to unlock, got %v", want, newly)
		}
	}
	if got["workouts_50"] {
		t.Error("workouts_50 should not unlock at 10 workouts")
	}
}

func TestAchievements_Idempotent(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	u.TotalWorkouts = 1

	unlocked := map[string]bool{}
	first := progression.EvaluateAchievements(u, progression.Catalog(), unlocked, stubLookup{}, day(2026, 7, 1, 12))
	if len(first) == 0 {
		t.Fatal("first evaluation should unlock something")
	}
	for _, def := range first {
		unlocked[def.ID] = true
	}

	// Unchanged counters: nothing new the second time.
	second := progression.EvaluateAchievements(u, progression.Catalog(), unlocked, stubLookup{}, day(2026, 7, 1, 12))
	if len(second) != 0 {
		t.Errorf("second evaluation unlocked %v, want nothing", second)
	}
}

func TestAchievements_CategoryPredicate(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	lookup := stubLookup{categoryCounts: map[domain.WorkoutCategory]int64{
		domain.CategoryStrength: 10,
		domain.CategoryCardio:   9,
	}}

	newly := progression.EvaluateAchievements(u, progression.Catalog(), map[string]bool{}, lookup, day(2026, 7, 1, 12))

	got := map[string]bool{}
	for _, def := range newly {
		got[def.ID] = true
	}
	if !got["strength_10"] {
		t.Error("strength_10 should unlock at 10 strength workouts")
	}
	if got["cardio_10"] {
		t.Error("cardio_10 should not unlock at 9 cardio workouts")
	}
}

func TestAchievements_PerfectWeek(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))

	newly := progression.EvaluateAchievements(u, progression.Catalog(), map[string]bool{}, stubLookup{perfectWeek: true}, day(2026, 7, 1, 12))

	found := false
	for _, def := range newly {
		if def.ID == "perfect_week" {
			found = true
		}
	}
	if !found {
		t.Error("perfect_week should unlock when every recent day has a workout")
	}
}

func TestAchievements_LookupErrorIsNotSatisfied(t *testing.T) {
	u := domain.NewUserProgression("u", day(2026, 7, 1, 8))
	lookup := stubLookup{err: errors.New("db down")}

	newly := progression.EvaluateAchievements(u, progression.Catalog(), map[string]bool{}, lookup, day(2026, 7, 1, 12))
	for _, def := range newly {
		if def.Kind == domain.PredCategoryWorkouts || def.Kind == domain.PredPerfectWeek {
			t.Errorf("%s unlocked despite lookup failure", def.ID)
		}
	}
}
