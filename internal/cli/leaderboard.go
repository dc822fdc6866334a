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
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 10, "Number of entries to show")
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardLimit int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show this week's leaderboard",
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Engine.WeeklyLeaderboard(time.Now().UTC(), leaderboardLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No activity this week.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSER\tXP\tWORKOUTS\tMINUTES")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n",
			e.Rank, e.UserID, e.WeeklyXP, e.WeeklyWorkouts, e.WeeklyMinutes)
	}
	return w.Flush()
}
