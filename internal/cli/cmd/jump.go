package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var jumpCmd = &cobra.Command{
	Use:   "jump <index>",
	Short: "Jump to a breadcrumb entry (0-based; -1 for the room root)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number")
		}

		if err := sess.JumpToBreadcrumb(index); err != nil {
			return finish(err)
		}
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(jumpCmd)
}
