package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulsefit-app/pulsefit/internal/daemon"
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

func init() {
	completeCmd.Flags().StringVar(&completeCategory, "category", "strength", "Workout category (strength|cardio|flexibility|balance)")
	completeCmd.Flags().IntVar(&completeDuration, "duration", 0, "Workout duration in seconds")
	completeCmd.Flags().IntVar(&completeCards, "cards", 0, "Cards completed")
	completeCmd.Flags().IntVar(&completeTotal, "total-cards", 0, "Total cards in the workout")
	rootCmd.AddCommand(completeCmd)
}

var (
	completeCategory string
	completeDuration int
	completeCards    int
	completeTotal    int
)

var completeCmd = &cobra.Command{
	Use:   "complete <user-id>",
	Short: "Record a completed workout and show the outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Engine.CompleteWorkout(domain.WorkoutEvent{
		UserID:          args[0],
		WorkoutID:       uuid.NewString(),
		Category:        domain.WorkoutCategory(completeCategory),
		DurationSeconds: completeDuration,
		CardsCompleted:  completeCards,
		TotalCards:      completeTotal,
	})
	if err != nil {
		return err
	}

	fmt.Printf("+%d XP (level %d, streak %d, %d lives)\n",
		res.XPGained, res.NewLevel, res.NewStreak, res.LivesRemaining)
	if res.LeveledUp {
		fmt.Printf("Level up! Now level %d\n", res.NewLevel)
	}
	if len(res.NewAchievements) > 0 {
		var names []string
		for _, a := range res.NewAchievements {
			names = append(names, a.Name)
		}
		fmt.Printf("Unlocked: %s\n", strings.Join(names, ", "))
	}
	return nil
}
