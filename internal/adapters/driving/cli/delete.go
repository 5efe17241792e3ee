package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var deleteType string

var deleteCmd = &cobra.Command{
	Use:   "delete [paths...]",
	Short: "Remove files from the knowledge base",
	Long: `Removes the summary and all stored chunks of each path.
The original files on disk are not touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteType, "type", "t", "all", "type to delete (document, note or all)")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docType, err := parseDocType(deleteType)
	if err != nil {
		return err
	}

	reports, err := knowledgeService.Delete(cmd.Context(), args, docType)
	if err != nil {
		return err
	}

	for _, report := range reports {
		if report.Failed() {
			cmd.Printf("  %-10s %s (%v)\n", report.Status, report.Path, report.Err)
		} else {
			cmd.Printf("  %-10s %s\n", report.Status, report.Path)
		}
	}
	return nil
}
