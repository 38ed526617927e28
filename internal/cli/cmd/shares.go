package cmd

import (
	"strings"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var sharesCmd = &cobra.Command{
	Use:   "shares <file-id>",
	Short: "List a file's share links, creating the first one if none exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		shares, err := sess.EnsureShares(strings.TrimSpace(args[0]))
		if err != nil {
			return finish(err)
		}

		if flagJSON {
			output.JSON(shares)
			return finish(nil)
		}

		output.ShareTable(shares, sess.DownloadURL)
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(sharesCmd)
}
