package cmd

import (
	"github.com/spf13/cobra"
)

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Go up one level",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if err := sess.GoBack(); err != nil {
			return finish(err)
		}
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(backCmd)
}
