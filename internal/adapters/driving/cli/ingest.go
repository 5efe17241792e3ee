package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var ingestType string

var ingestCmd = &cobra.Command{
	Use:   "ingest [paths...]",
	Short: "Index files into the knowledge base",
	Long: `Loads each file, generates a summary, splits the content into chunks
and stores everything in the knowledge base.

Supported formats: .md, .txt, .pdf, .docx. Files already indexed under
the same type are skipped, so re-running over a directory is safe.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestType, "type", "t", "document", "type to index as (document or note)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docType, err := parseDocType(ingestType)
	if err != nil {
		return err
	}

	reports, err := knowledgeService.Ingest(cmd.Context(), args, docType)
	if err != nil {
		return err
	}

	failures := 0
	for _, report := range reports {
		switch {
		case report.Failed():
			failures++
			cmd.Printf("  %-10s %s (%v)\n", report.Status, report.Path, report.Err)
		default:
			cmd.Printf("  %-10s %s\n", report.Status, report.Path)
		}
	}

	if failures > 0 {
		cmd.Printf("\n%d of %d files failed.\n", failures, len(reports))
	}
	return nil
}
