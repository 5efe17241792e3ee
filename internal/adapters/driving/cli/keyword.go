package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var keywordType string

var keywordCmd = &cobra.Command{
	Use:   "keyword [text]",
	Short: "Find chunks containing exact text",
	Long: `Searches stored chunks for an exact, case-sensitive substring.
Useful when you remember specific wording rather than a topic.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeyword,
}

func init() {
	keywordCmd.Flags().StringVarP(&keywordType, "type", "t", "all", "type to search (document, note or all)")
	rootCmd.AddCommand(keywordCmd)
}

func runKeyword(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docType, err := parseDocType(keywordType)
	if err != nil {
		return err
	}

	snippets, err := knowledgeService.KeywordSearch(cmd.Context(), args[0], docType)
	if err != nil {
		return err
	}

	if len(snippets) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	for i, snippet := range snippets {
		cmd.Printf("  [%d] %s\n\n", i+1, snippet)
	}
	return nil
}
