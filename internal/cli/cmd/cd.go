package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var cdCmd = &cobra.Command{
	Use:   "cd <folder-id>",
	Short: "Open a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if err := sess.EnterFolder(strings.TrimSpace(args[0])); err != nil {
			return finish(err)
		}
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(cdCmd)
}
