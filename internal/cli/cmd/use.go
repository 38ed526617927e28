package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <room-id>",
	Short: "Select a room and position at its root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if err := sess.SelectRoom(strings.TrimSpace(args[0])); err != nil {
			return finish(err)
		}

		fmt.Printf("Using room %q\n", sess.View().Room.Name)
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
