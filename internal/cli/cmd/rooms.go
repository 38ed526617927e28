package cmd

import (
	"fmt"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List your data rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		rooms, err := apiClient.ListRooms()
		if err != nil {
			return fmt.Errorf("listing rooms: %w", err)
		}

		if flagJSON {
			output.JSON(rooms)
			return nil
		}

		output.RoomTable(rooms)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roomsCmd)
}
