package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsefit-app/pulsefit/internal/daemon"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <user-id>",
	Short: "Create progression state for a new user",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	u, err := d.Engine.Register(args[0], time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (level %d, %d lives)\n", u.UserID, u.CurrentLevel, u.LivesRemaining)
	return nil
}
