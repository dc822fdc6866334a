package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulsefit-app/pulsefit/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements <user-id>",
	Short: "List a user's unlocked achievements",
	Args:  cobra.ExactArgs(1),
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked, err := d.Engine.UnlockedAchievements(args[0])
	if err != nil {
		return err
	}
	if len(unlocked) == 0 {
		fmt.Println("No achievements unlocked yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ICON\tID\tNAME")
	for _, a := range unlocked {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Icon, a.ID, a.Name)
	}
	return w.Flush()
}
