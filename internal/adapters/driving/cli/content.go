package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var contentType string

var contentCmd = &cobra.Command{
	Use:   "content [path]",
	Short: "Print the stored content of a file",
	Long:  `Prints every chunk stored for a path, as indexed at ingestion time.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runContent,
}

func init() {
	contentCmd.Flags().StringVarP(&contentType, "type", "t", "all", "type to look up (document, note or all)")
	rootCmd.AddCommand(contentCmd)
}

func runContent(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docType, err := parseDocType(contentType)
	if err != nil {
		return err
	}

	content, err := knowledgeService.GetContent(cmd.Context(), args[0], docType)
	if err != nil {
		return err
	}

	if content.Empty() {
		cmd.Printf("%s is not indexed.\n", args[0])
		return nil
	}

	for _, text := range content.Texts {
		cmd.Println(text)
		cmd.Println()
	}
	return nil
}
