package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

var (
	searchType string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Answers a natural language query with relevant chunks.

The query is matched against document summaries first; the best-matching
source is then searched at chunk level, so results always come from the
single most relevant file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "all", "type to search (document, note or all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docType, err := parseDocType(searchType)
	if err != nil {
		return err
	}

	records, err := knowledgeService.Query(cmd.Context(), args[0], docType)
	if err != nil {
		return err
	}

	if searchJSON {
		return outputSearchJSON(cmd, records)
	}
	return outputSearchText(cmd, records)
}

type searchResult struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Type    string `json:"type"`
}

func outputSearchJSON(cmd *cobra.Command, records []domain.Record) error {
	results := make([]searchResult, len(records))
	for i, record := range records {
		results[i] = searchResult{
			Content: record.Text,
			Source:  record.Metadata.Source,
			Type:    record.Metadata.Type.String(),
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, records []domain.Record) error {
	if len(records) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results from %s:\n\n", records[0].Metadata.Source)
	for i, record := range records {
		cmd.Printf("  [%d] %s\n\n", i+1, record.Text)
	}
	return nil
}
