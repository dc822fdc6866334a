// Package progression implements the PulseFit progression engine: XP
// awards, levels, daily streaks with freezes, hearts, achievement
// unlocks, and the weekly leaderboard, all driven by one workout
// completion orchestrator.
package progression

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pulsefit-app/pulsefit/internal/domain"
	"github.com/pulsefit-app/pulsefit/internal/infra/metrics"
)

// maxSaveRetries bounds the reload-recompute cycle after a save conflict.
const maxSaveRetries = 3

// Service is the workout completion orchestrator. It loads a user's
// progression once per event, threads the same in-memory snapshot
// through every step, and writes the merged state back exactly once.
type Service struct {
	store    Store
	rules    domain.RuleTable
	catalog  []domain.AchievementDef
	notifier Notifier

	mu    sync.Mutex
	locks map[string]*userMutex // per-user serialization
}

// userMutex serializes one user's mutations. refs counts waiters so the
// entry can be evicted once nobody holds or wants it.
type userMutex struct {
	sync.Mutex
	refs int
}

// NewService wires the engine. A nil notifier falls back to LogNotifier.
func NewService(store Store, rules domain.RuleTable, catalog []domain.AchievementDef, notifier Notifier) *Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Service{
		store:    store,
		rules:    rules,
		catalog:  catalog,
		notifier: notifier,
		locks:    make(map[string]*userMutex),
	}
}

// lockUser acquires the mutex serializing all mutations for one user.
// Cross-process writers are caught by the Version check instead.
func (s *Service) lockUser(userID string) *userMutex {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userMutex{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return l
}

// unlockUser releases the mutex and evicts the map entry once no
// goroutine holds or waits on it, so the map stays bounded by the
// number of in-flight users.
func (s *Service) unlockUser(userID string, l *userMutex) {
	l.Unlock()
	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
	s.mu.Unlock()
}

// CompleteWorkout processes one workout completion event end to end:
// XP award, level recompute, streak advance, achievement evaluation,
// leaderboard fold, lives check. The run either fully commits or leaves
// user-visible state untouched; on domain.ErrConflict the whole run is
// retried from a fresh load up to maxSaveRetries times.
func (s *Service) CompleteWorkout(ev domain.WorkoutEvent) (*domain.CompletionResult, error) {
	if err := validateEvent(ev); err != nil {
		return nil, err
	}
	now := ev.CompletedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	lock := s.lockUser(ev.UserID)
	defer s.unlockUser(ev.UserID, lock)

	timer := metrics.NewCompletionTimer()
	defer timer.Observe()

	// The user must exist before anything is written.
	if _, err := s.store.LoadUser(ev.UserID); err != nil {
		return nil, err
	}

	// Append to the completion log first so the history-backed
	// achievement predicates see this workout. The log insert is
	// idempotent by workout id, which also rejects duplicate retries.
	inserted, err := s.store.RecordWorkout(domain.WorkoutRecord{
		WorkoutID:       ev.WorkoutID,
		UserID:          ev.UserID,
		Category:        ev.Category,
		DurationSeconds: ev.DurationSeconds,
		Perfect:         ev.Perfect(),
		CompletedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("record workout: %w", err)
	}
	if !inserted {
		return nil, domain.ErrDuplicateWorkout
	}

	// If the run fails past this point the log row must not survive:
	// a lingering row would reject the caller's retry as a duplicate
	// and poison the history-backed predicates with a workout the user
	// was never credited for. Compensating keeps a failed run fully
	// unprocessed and safely retryable.
	committed := false
	defer func() {
		if committed {
			return
		}
		if derr := s.store.DeleteWorkout(ev.WorkoutID); derr != nil {
			log.Printf("[progression] compensate workout %s: %v", ev.WorkoutID, derr)
		}
	}()

	dayCount, err := s.store.CountWorkoutsOnDay(ev.UserID, dateOnly(now), ev.WorkoutID)
	if err != nil {
		return nil, fmt.Errorf("count workouts today: %w", err)
	}
	firstOfDay := dayCount == 0

	var (
		u         *domain.UserProgression
		result    *domain.CompletionResult
		streakRes StreakResult
		leveledUp bool
	)
	for attempt := 0; ; attempt++ {
		u, err = s.store.LoadUser(ev.UserID)
		if err != nil {
			return nil, err
		}

		// Lazy heart refill before anything reads the pool.
		CheckAndRestoreLives(u, now)

		streakRes = AdvanceStreak(u, now)

		xp := AwardXP(ev, firstOfDay, streakRes.NewStreak, s.rules)
		oldLevel := u.CurrentLevel
		u.ExperiencePoints += xp
		u.CurrentLevel = LevelForXP(u.ExperiencePoints)
		u.XPToNextLevel = XPToNextLevel(u.ExperiencePoints)
		leveledUp = u.CurrentLevel > oldLevel

		u.TotalWorkouts++
		u.TotalMinutes += int64(ev.Minutes())

		unlocked, err := s.store.UnlockedAchievementIDs(ev.UserID)
		if err != nil {
			return nil, fmt.Errorf("load unlocked achievements: %w", err)
		}
		newly := EvaluateAchievements(u, s.catalog, unlocked, s.store, now)

		result = &domain.CompletionResult{
			XPGained:         xp,
			NewLevel:         u.CurrentLevel,
			LeveledUp:        leveledUp,
			NewStreak:        streakRes.NewStreak,
			StreakIncreased:  streakRes.Increased,
			StreakMaintained: streakRes.Maintained,
			NewAchievements:  newly,
			LivesRemaining:   u.LivesRemaining,
		}

		err = s.store.SaveUser(u)
		if errors.Is(err, domain.ErrConflict) && attempt+1 < maxSaveRetries {
			metrics.SaveConflicts.Inc()
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	committed = true

	// Post-commit effects. Unlock rows are insert-if-absent and the
	// leaderboard fold is an atomic increment, so neither can corrupt
	// user state; running them after the save keeps a conflicted run
	// from double-counting the week's XP.
	confirmed := result.NewAchievements[:0]
	for _, def := range result.NewAchievements {
		ok, err := s.store.InsertUnlockIfAbsent(ev.UserID, def.ID, now)
		if err != nil {
			// Best-effort: the next evaluation will pick it up again.
			continue
		}
		if ok {
			confirmed = append(confirmed, def)
			metrics.AchievementsUnlocked.Inc()
		}
	}
	result.NewAchievements = confirmed

	// Best-effort, like the unlock inserts: the user state is already
	// durable, so surfacing this as the run's error would push the
	// caller into a retry that can only hit the duplicate check.
	if err := s.recordActivity(ev.UserID, result.XPGained, int64(ev.Minutes()), now); err != nil {
		log.Printf("[progression] leaderboard fold %s: %v", ev.UserID, err)
	}

	metrics.WorkoutsCompleted.WithLabelValues(string(ev.Category)).Inc()
	metrics.XPAwarded.Add(float64(result.XPGained))
	if leveledUp {
		metrics.LevelUps.Inc()
	}

	s.emitFacts(ev.UserID, result)
	return result, nil
}

// emitFacts publishes the run's outcome to the notifier, fire-and-forget.
func (s *Service) emitFacts(userID string, r *domain.CompletionResult) {
	if r.LeveledUp {
		s.notifier.LeveledUp(domain.LeveledUp{UserID: userID, NewLevel: r.NewLevel, XPGained: r.XPGained})
	}
	if len(r.NewAchievements) > 0 {
		s.notifier.AchievementsUnlocked(domain.AchievementsUnlocked{UserID: userID, Achievements: r.NewAchievements})
	}
	s.notifier.StreakChanged(domain.StreakChanged{
		UserID:     userID,
		NewStreak:  r.NewStreak,
		Increased:  r.StreakIncreased,
		Maintained: r.StreakMaintained,
	})
}

// ─── Secondary Entry Points ─────────────────────────────────────────────────

// UseFreeze spends one of the month's streak freezes for the user.
// Returns false when the monthly cap is already used, a policy
// outcome, not an error.
func (s *Service) UseFreeze(userID string, now time.Time) (bool, error) {
	var used bool
	_, err := s.updateUser(userID, func(u *domain.UserProgression) {
		used = UseStreakFreeze(u, now)
	})
	if err != nil {
		return false, err
	}
	if used {
		metrics.StreakFreezes.Inc()
	}
	return used, nil
}

// Deduct removes one heart from the user's pool, restoring it first if
// the refill deadline has passed.
func (s *Service) Deduct(userID string, now time.Time) (LivesResult, error) {
	var res LivesResult
	u, err := s.updateUser(userID, func(u *domain.UserProgression) {
		CheckAndRestoreLives(u, now)
		res = DeductLife(u, now)
	})
	if err != nil {
		return LivesResult{}, err
	}
	metrics.LivesDeducted.Inc()
	s.notifier.LivesChanged(domain.LivesChanged{
		UserID:         u.UserID,
		LivesRemaining: res.LivesRemaining,
		CanContinue:    res.CanContinue,
	})
	return res, nil
}

// Progression returns the user's current state, applying the lazy heart
// refill on read. The restore write-back is best-effort; a conflict just
// means another writer already observed it.
func (s *Service) Progression(userID string, now time.Time) (*domain.UserProgression, error) {
	u, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, err
	}
	before := u.LivesRemaining
	CheckAndRestoreLives(u, now)
	if u.LivesRemaining != before {
		if err := s.store.SaveUser(u); err != nil && !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}
	return u, nil
}

// Register creates default progression state for a new account.
func (s *Service) Register(userID string, now time.Time) (*domain.UserProgression, error) {
	u := domain.NewUserProgression(userID, now)
	if err := s.store.CreateUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UnlockedAchievements returns the catalog entries the user has earned.
func (s *Service) UnlockedAchievements(userID string) ([]domain.AchievementDef, error) {
	ids, err := s.store.UnlockedAchievementIDs(userID)
	if err != nil {
		return nil, err
	}
	var out []domain.AchievementDef
	for _, def := range s.catalog {
		if ids[def.ID] {
			out = append(out, def)
		}
	}
	return out, nil
}

// Catalog returns the full achievement catalog (for display).
func (s *Service) Catalog() []domain.AchievementDef {
	return s.catalog
}

// updateUser runs a load-modify-store cycle for one user under the
// per-user lock, retrying on save conflicts.
func (s *Service) updateUser(userID string, fn func(*domain.UserProgression)) (*domain.UserProgression, error) {
	lock := s.lockUser(userID)
	defer s.unlockUser(userID, lock)

	for attempt := 0; ; attempt++ {
		u, err := s.store.LoadUser(userID)
		if err != nil {
			return nil, err
		}
		fn(u)
		err = s.store.SaveUser(u)
		if errors.Is(err, domain.ErrConflict) && attempt+1 < maxSaveRetries {
			metrics.SaveConflicts.Inc()
			continue
		}
		if err != nil {
			return nil, err
		}
		return u, nil
	}
}

// validateEvent rejects events the engine cannot meaningfully process.
func validateEvent(ev domain.WorkoutEvent) error {
	switch {
	case ev.UserID == "":
		return fmt.Errorf("%w: missing user id", domain.ErrInvalidEvent)
	case ev.WorkoutID == "":
		return fmt.Errorf("%w: missing workout id", domain.ErrInvalidEvent)
	case ev.DurationSeconds < 0:
		return fmt.Errorf("%w: negative duration", domain.ErrInvalidEvent)
	case ev.CardsCompleted < 0 || ev.TotalCards < 0:
		return fmt.Errorf("%w: negative card counts", domain.ErrInvalidEvent)
	case ev.CardsCompleted > ev.TotalCards:
		return fmt.Errorf("%w: completed %d of %d cards", domain.ErrInvalidEvent, ev.CardsCompleted, ev.TotalCards)
	}
	return nil
}
