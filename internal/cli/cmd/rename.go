package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <folder|file> <id> <new-name>",
	Short: "Rename a folder or file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		kind, id, name := strings.ToLower(args[0]), strings.TrimSpace(args[1]), args[2]

		switch kind {
		case "folder":
			folder, err := sess.RenameFolder(id, name)
			if err != nil {
				return finish(err)
			}
			fmt.Printf("Renamed folder to %q\n", folder.Name)
		case "file":
			file, err := sess.RenameFile(id, name)
			if err != nil {
				return finish(err)
			}
			fmt.Printf("Renamed file to %q\n", file.Name)
		default:
			return fmt.Errorf("first argument must be \"folder\" or \"file\"")
		}
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
