// Package domain holds the shared types of the PulseFit progression engine.
// Types here are pure data with no storage or transport dependencies.
package domain

import "time"

// MaxLives is the size of the heart pool.
const MaxLives = 5

// LivesRefillDelay is how long after exhaustion the pool fully restores.
const LivesRefillDelay = 30 * time.Minute

// MaxFreezesPerMonth caps streak freezes per calendar month.
const MaxFreezesPerMonth = 3

// WorkoutCategory groups workouts by training focus.
type WorkoutCategory string

const (
	CategoryStrength    WorkoutCategory = "strength"
	CategoryCardio      WorkoutCategory = "cardio"
	CategoryFlexibility WorkoutCategory = "flexibility"
	CategoryBalance     WorkoutCategory = "balance"
)

// UserProgression is the per-user progression state. It is mutated only
// through the completion orchestrator's load-modify-store path; Version
// backs the optimistic concurrency check at save time.
type UserProgression struct {
	UserID           string    `json:"user_id"`
	ExperiencePoints int64     `json:"experience_points"`
	CurrentLevel     int       `json:"current_level"`
	XPToNextLevel    int64     `json:"xp_to_next_level"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastWorkoutAt    time.Time `json:"last_workout_at"` // zero = no workout yet
	FreezeUses       int       `json:"freeze_uses"`     // freezes used this month
	FreezeMonth      string    `json:"freeze_month"`    // "YYYY-MM" the counter belongs to
	FreezeDay        time.Time `json:"freeze_day"`      // date-only day a freeze protects; zero = none
	LivesRemaining   int       `json:"lives_remaining"`
	LivesRefillAt    time.Time `json:"lives_refill_at"` // zero = no refill pending
	TotalWorkouts    int64     `json:"total_workouts"`
	TotalMinutes     int64     `json:"total_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	Version          int64     `json:"-"`
}

// NewUserProgression returns the default state created at account creation.
func NewUserProgression(userID string, now time.Time) *UserProgression {
	return &UserProgression{
		UserID:         userID,
		CurrentLevel:   1,
		LivesRemaining: MaxLives,
		CreatedAt:      now,
	}
}

// WorkoutEvent is one completed workout. It is the engine's input and is
// ephemeral: the storage layer keeps a completion log, the event itself
// is never stored.
type WorkoutEvent struct {
	UserID          string          `json:"user_id"`
	WorkoutID       string          `json:"workout_id"`
	Category        WorkoutCategory `json:"category"`
	DurationSeconds int             `json:"duration_seconds"`
	CardsCompleted  int             `json:"cards_completed"`
	TotalCards      int             `json:"total_cards"`
	CompletedAt     time.Time       `json:"completed_at"`
}

// Perfect reports whether every card in the workout was completed.
func (e WorkoutEvent) Perfect() bool {
	return e.TotalCards > 0 && e.CardsCompleted == e.TotalCards
}

// Minutes returns the whole minutes of the workout.
func (e WorkoutEvent) Minutes() int {
	return e.DurationSeconds / 60
}

// WorkoutRecord is a persisted completion log row, the source of truth for
// first-of-day, category-count and perfect-week queries.
type WorkoutRecord struct {
	WorkoutID       string          `json:"workout_id"`
	UserID          string          `json:"user_id"`
	Category        WorkoutCategory `json:"category"`
	DurationSeconds int             `json:"duration_seconds"`
	Perfect         bool            `json:"perfect"`
	CompletedAt     time.Time       `json:"completed_at"`
}

// CompletionResult is the consolidated outcome of one workout completion.
type CompletionResult struct {
	XPGained         int64            `json:"xp_gained"`
	NewLevel         int              `json:"new_level"`
	LeveledUp        bool             `json:"leveled_up"`
	NewStreak        int              `json:"new_streak"`
	StreakIncreased  bool             `json:"streak_increased"`
	StreakMaintained bool             `json:"streak_maintained"`
	NewAchievements  []AchievementDef `json:"new_achievements"`
	LivesRemaining   int              `json:"lives_remaining"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// PredicateKind names the closed set of achievement predicates.
type PredicateKind string

const (
	PredTotalWorkouts    PredicateKind = "total_workouts"
	PredCurrentStreak    PredicateKind = "current_streak"
	PredExperiencePoints PredicateKind = "experience_points"
	PredCurrentLevel     PredicateKind = "current_level"
	PredTotalMinutes     PredicateKind = "total_minutes"
	PredCategoryWorkouts PredicateKind = "category_workouts"
	PredPerfectWeek      PredicateKind = "perfect_week"
)

// AchievementDef defines one entry of the read-only achievement catalog.
// Category is only meaningful for category_workouts predicates.
type AchievementDef struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Kind      PredicateKind   `json:"kind"`
	Threshold int64           `json:"threshold"`
	Category  WorkoutCategory `json:"category,omitempty"`
}

// AchievementUnlock is an append-only unlock fact. At most one row exists
// per (user, achievement) pair.
type AchievementUnlock struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// ─── Leaderboard Types ──────────────────────────────────────────────────────

// LeaderboardEntry accumulates one user's activity within one ISO week.
// WeekStart is always the Monday 00:00 UTC of the week.
type LeaderboardEntry struct {
	UserID         string    `json:"user_id"`
	WeekStart      time.Time `json:"week_start"`
	WeeklyXP       int64     `json:"weekly_xp"`
	WeeklyWorkouts int64     `json:"weekly_workouts"`
	WeeklyMinutes  int64     `json:"weekly_minutes"`
	Rank           int       `json:"rank,omitempty"`
}

// ─── Notification Facts ─────────────────────────────────────────────────────
// The engine emits facts; delivery is a collaborator's concern.

// LeveledUp is emitted when a completion crosses a level threshold.
type LeveledUp struct {
	UserID   string `json:"user_id"`
	NewLevel int    `json:"new_level"`
	XPGained int64  `json:"xp_gained"`
}

// AchievementsUnlocked is emitted once per completion that unlocks anything.
type AchievementsUnlocked struct {
	UserID       string           `json:"user_id"`
	Achievements []AchievementDef `json:"achievements"`
}

// StreakChanged is emitted on every completion.
type StreakChanged struct {
	UserID     string `json:"user_id"`
	NewStreak  int    `json:"new_streak"`
	Increased  bool   `json:"increased"`
	Maintained bool   `json:"maintained"`
}

// LivesChanged is emitted when the heart pool changes.
type LivesChanged struct {
	UserID         string `json:"user_id"`
	LivesRemaining int    `json:"lives_remaining"`
	CanContinue    bool   `json:"can_continue"`
}
