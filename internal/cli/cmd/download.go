package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var flagOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <file-id> [local-dir]",
	Short: "Download a file",
	Long: `Download a file to your local machine. The CLI mints a share link
and fetches through it, the same path a link recipient uses.

  dataroom download <file-id>             Download to the current directory
  dataroom download <file-id> ./out       Download to a specific directory
  dataroom download <file-id> -o name.pdf Override the local name`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		fileID := strings.TrimSpace(args[0])
		file, err := apiClient.GetFile(fileID)
		if err != nil {
			return fmt.Errorf("fetching file info: %w", err)
		}

		destDir := "."
		if len(args) > 1 {
			destDir = args[1]
		}
		dest := filepath.Join(destDir, file.Name+".pdf")
		if flagOutput != "" {
			dest = flagOutput
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}

		if err := sess.AuthenticatedDownload(fileID, dest); err != nil {
			return finish(err)
		}

		fmt.Printf("Downloaded %s to %s\n", file.Name, dest)
		return finish(nil)
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (overrides default naming)")
	rootCmd.AddCommand(downloadCmd)
}
