package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagRmroomForce bool

var rmroomCmd = &cobra.Command{
	Use:   "rmroom <room-id>",
	Short: "Delete a data room and everything in it",
	Long: `Delete a data room with all of its folders, files, and share links.

  dataroom rmroom <room-id>
  dataroom rmroom <room-id> --force   Skip confirmation

Warning: This removes every folder and file in the room. This cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		roomID := strings.TrimSpace(args[0])
		detail, err := apiClient.GetRoom(roomID)
		if err != nil {
			return fmt.Errorf("fetching room info: %w", err)
		}

		if !flagRmroomForce {
			prompt := fmt.Sprintf("Delete room %q and everything in it? This cannot be undone.", detail.Room.Name)
			if !confirm(os.Stdin, prompt) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := sess.DeleteRoom(roomID); err != nil {
			return finish(err)
		}

		fmt.Printf("Deleted: %s\n", detail.Room.Name)
		return finish(nil)
	},
}

func init() {
	rmroomCmd.Flags().BoolVarP(&flagRmroomForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(rmroomCmd)
}
