package cmd

import (
	"fmt"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder at the current position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		folder, err := sess.CreateFolder(args[0])
		if err != nil {
			return finish(err)
		}

		if flagJSON {
			output.JSON(folder)
			return finish(nil)
		}

		fmt.Printf("Created folder %q (%s)\n", folder.Name, folder.ID)
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
}
