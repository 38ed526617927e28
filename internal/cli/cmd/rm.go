package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagRmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <folder|file> <id>",
	Short: "Delete a folder (recursively) or a file",
	Long: `Delete a folder or a file from the current room.

  dataroom rm file <file-id>
  dataroom rm folder <folder-id>           Removes all contents recursively
  dataroom rm folder <folder-id> --force   Skip confirmation

Warning: Deleting a folder removes all contents recursively. This cannot be undone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		kind, id := strings.ToLower(args[0]), strings.TrimSpace(args[1])

		switch kind {
		case "folder":
			detail, err := apiClient.GetFolder(id)
			if err != nil {
				return fmt.Errorf("fetching folder info: %w", err)
			}
			if !flagRmForce {
				prompt := fmt.Sprintf("Delete folder %q and all its contents? This cannot be undone.", detail.Folder.Name)
				if !confirm(os.Stdin, prompt) {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := sess.DeleteFolder(id); err != nil {
				return finish(err)
			}
			fmt.Printf("Deleted: %s\n", detail.Folder.Name)
		case "file":
			file, err := apiClient.GetFile(id)
			if err != nil {
				return fmt.Errorf("fetching file info: %w", err)
			}
			if !flagRmForce {
				prompt := fmt.Sprintf("Delete file %q? This cannot be undone.", file.Name)
				if !confirm(os.Stdin, prompt) {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := sess.DeleteFile(id); err != nil {
				return finish(err)
			}
			fmt.Printf("Deleted: %s\n", file.Name)
		default:
			return fmt.Errorf("first argument must be \"folder\" or \"file\"")
		}
		return finish(nil)
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&flagRmForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}
