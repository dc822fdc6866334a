// Package metrics provides Prometheus metrics for the progression
// engine: completions, XP, level-ups, unlocks, hearts, and save
// conflicts. Exposed on /metrics when telemetry is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Completions ────────────────────────────────────────────────────────────

// WorkoutsCompleted counts processed completions by category.
var WorkoutsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "workouts_completed_total",
	Help:      "Total workout completions processed.",
}, []string{"category"})

// CompletionLatency tracks one orchestration run's duration in seconds.
var CompletionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "pulsefit",
	Name:      "completion_latency_seconds",
	Help:      "Workout completion orchestration duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
})

// SaveConflicts counts optimistic-concurrency retries at save time.
var SaveConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "save_conflicts_total",
	Help:      "Total user saves that hit a concurrent-modification conflict.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// XPAwarded accumulates all XP granted by the award calculator.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "xp_awarded_total",
	Help:      "Total experience points awarded.",
})

// LevelUps counts completions that crossed a level threshold.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "level_ups_total",
	Help:      "Total level-ups.",
})

// AchievementsUnlocked counts newly created unlock rows.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// StreakFreezes counts successful streak freeze uses.
var StreakFreezes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "streak_freezes_total",
	Help:      "Total streak freezes spent.",
})

// LivesDeducted counts heart deductions.
var LivesDeducted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulsefit",
	Name:      "lives_deducted_total",
	Help:      "Total hearts deducted.",
})

// CompletionTimer times one orchestration run.
type CompletionTimer struct {
	timer *prometheus.Timer
}

// NewCompletionTimer starts a completion latency observation.
func NewCompletionTimer() *CompletionTimer {
	return &CompletionTimer{timer: prometheus.NewTimer(CompletionLatency)}
}

// Observe records the elapsed time.
func (t *CompletionTimer) Observe() {
	t.timer.ObserveDuration()
}
