package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsefit-app/pulsefit/internal/daemon"
	"github.com/pulsefit-app/pulsefit/internal/domain"
)

func init() {
	rootCmd.AddCommand(freezeCmd)
}

var freezeCmd = &cobra.Command{
	Use:   "freeze <user-id>",
	Short: "Spend a streak freeze for today",
	Long: fmt.Sprintf(`Protect today's streak against a missed workout.
Each user gets %d freezes per calendar month.`, domain.MaxFreezesPerMonth),
	Args: cobra.ExactArgs(1),
	RunE: runFreeze,
}

func runFreeze(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	used, err := d.Engine.UseFreeze(args[0], time.Now().UTC())
	if err != nil {
		return err
	}
	if !used {
		fmt.Println("No freezes left this month.")
		return nil
	}
	fmt.Println("Freeze applied for today.")
	return nil
}
