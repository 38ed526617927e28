package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagExpires string

var shareCmd = &cobra.Command{
	Use:   "share <file-id>",
	Short: "Create a share link for a file",
	Long: `Mint a new tokenized share link. Anyone with the link can download
the file without logging in, until the link expires or is revoked.

  dataroom share <file-id>                        Link that never expires
  dataroom share <file-id> --expires 2026-10-01T00:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var expiresAt *time.Time
		if strings.TrimSpace(flagExpires) != "" {
			parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(flagExpires))
			if err != nil {
				return fmt.Errorf("--expires must be RFC3339 (e.g. 2026-10-01T00:00:00Z)")
			}
			expiresAt = &parsed
		}

		share, err := sess.CreateShare(strings.TrimSpace(args[0]), expiresAt)
		if err != nil {
			return finish(err)
		}

		if flagJSON {
			output.JSON(share)
			return finish(nil)
		}

		fmt.Println(sess.DownloadURL(share.Token))
		return finish(nil)
	},
}

func init() {
	shareCmd.Flags().StringVar(&flagExpires, "expires", "", "Expiry timestamp (RFC3339); omit for a link that never expires")
	rootCmd.AddCommand(shareCmd)
}
