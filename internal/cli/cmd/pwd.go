package cmd

import (
	"fmt"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var pwdCmd = &cobra.Command{
	Use:   "pwd",
	Short: "Show the current position",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		state := sess.State()
		if state.RoomID == "" {
			fmt.Println("No room selected.")
			return nil
		}

		output.Breadcrumb(state.RoomName, sess.Breadcrumb())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pwdCmd)
}
