package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsefit-app/pulsefit/internal/daemon"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress <user-id>",
	Short: "Show a user's progression state",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	u, err := d.Engine.Progression(args[0], time.Now().UTC())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "User\t%s\n", u.UserID)
	fmt.Fprintf(w, "Level\t%d (%d XP, %d to next)\n", u.CurrentLevel, u.ExperiencePoints, u.XPToNextLevel)
	fmt.Fprintf(w, "Streak\t%d (longest %d)\n", u.CurrentStreak, u.LongestStreak)
	fmt.Fprintf(w, "Lives\t%d\n", u.LivesRemaining)
	fmt.Fprintf(w, "Workouts\t%d (%d min)\n", u.TotalWorkouts, u.TotalMinutes)
	if !u.LastWorkoutAt.IsZero() {
		fmt.Fprintf(w, "Last workout\t%s\n", u.LastWorkoutAt.Format(time.RFC3339))
	}
	return w.Flush()
}
