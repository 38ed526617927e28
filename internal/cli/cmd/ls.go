package cmd

import (
	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List folders and files at the current position",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if err := sess.Refresh(); err != nil {
			return finish(err)
		}

		view := sess.View()
		if flagJSON {
			output.JSON(map[string]interface{}{
				"folders": view.Folders,
				"files":   view.Files,
			})
			return finish(nil)
		}

		output.Listing(view)
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
