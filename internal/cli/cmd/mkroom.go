package cmd

import (
	"fmt"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagRoomDescription string

var mkroomCmd = &cobra.Command{
	Use:   "mkroom <name>",
	Short: "Create a data room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		room, err := sess.CreateRoom(args[0], flagRoomDescription)
		if err != nil {
			return finish(err)
		}

		if flagJSON {
			output.JSON(room)
			return finish(nil)
		}

		fmt.Printf("Created room %q (%s)\n", room.Name, room.ID)
		return finish(nil)
	},
}

func init() {
	mkroomCmd.Flags().StringVar(&flagRoomDescription, "description", "", "Room description")
	rootCmd.AddCommand(mkroomCmd)
}
