package cmd

import (
	"fmt"

	"github.com/HolmesInc/data-storage/internal/cli/output"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path> [path...]",
	Short: "Upload PDF documents into the open folder",
	Long: `Upload one or more local PDF files into the folder the session is
currently inside. Files that are not PDFs are rejected individually; the
rest of the batch still uploads.

  dataroom upload report.pdf
  dataroom upload q1.pdf q2.pdf q3.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		results, err := sess.UploadFiles(args)
		if err != nil {
			return finish(err)
		}

		output.UploadResults(results)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			_ = finish(nil)
			return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
		}
		return finish(nil)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
