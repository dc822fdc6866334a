package progression

import (
	"log"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// Notifier consumes the facts the engine emits after a committed run.
// Delivery is fire-and-forget: the engine never blocks on, or fails
// because of, a notifier.
type Notifier interface {
	LeveledUp(f domain.LeveledUp)
	AchievementsUnlocked(f domain.AchievementsUnlocked)
	StreakChanged(f domain.StreakChanged)
	LivesChanged(f domain.LivesChanged)
}

// LogNotifier writes facts to the process log. It is the default wiring
// when no push collaborator is configured.
type LogNotifier struct{}

func (LogNotifier) LeveledUp(f domain.LeveledUp) {
	log.Printf("[notify] %s leveled up to %d (+%d XP)", f.UserID, f.NewLevel, f.XPGained)
}

func (LogNotifier) AchievementsUnlocked(f domain.AchievementsUnlocked) {
	for _, a := range f.Achievements {
		log.Printf("[notify] %s unlocked %s %s", f.UserID, a.Icon, a.Name)
	}
}

func (LogNotifier) StreakChanged(f domain.StreakChanged) {
	log.Printf("[notify] %s streak now %d (increased=%v maintained=%v)", f.UserID, f.NewStreak, f.Increased, f.Maintained)
}

func (LogNotifier) LivesChanged(f domain.LivesChanged) {
	log.Printf("[notify] %s lives now %d (can_continue=%v)", f.UserID, f.LivesRemaining, f.CanContinue)
}
