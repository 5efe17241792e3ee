package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var listType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed files",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "all", "type to list (document, note or all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docType, err := parseDocType(listType)
	if err != nil {
		return err
	}

	paths, err := knowledgeService.List(cmd.Context(), docType)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		cmd.Println("Nothing indexed yet.")
		return nil
	}

	for _, path := range paths {
		cmd.Println(path)
	}
	return nil
}
