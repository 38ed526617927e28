package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var unshareCmd = &cobra.Command{
	Use:   "unshare <share-id>",
	Short: "Revoke a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if err := sess.RevokeShare(strings.TrimSpace(args[0])); err != nil {
			return finish(err)
		}

		fmt.Println("Share revoked.")
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(unshareCmd)
}
