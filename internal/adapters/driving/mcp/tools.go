package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find relevant content"`
	Scope string `json:"scope,omitempty" jsonschema:"where to search: document, note or all (default all)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Type    string `json:"type"`
}

// KeywordSearchInput is the input schema for the keyword_search tool.
type KeywordSearchInput struct {
	Keyword string `json:"keyword" jsonschema:"the exact, case-sensitive text to look for"`
	Scope   string `json:"scope,omitempty" jsonschema:"where to search: document, note or all (default all)"`
}

// KeywordSearchOutput is the output schema for the keyword_search tool.
type KeywordSearchOutput struct {
	Snippets []string `json:"snippets"`
	Count    int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the knowledge base for content relevant to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "keyword_search",
		Description: "Find knowledge base snippets containing an exact keyword",
	}, s.handleKeywordSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	docType, err := scopeToType(input.Scope)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	records, err := s.ports.Knowledge.Query(ctx, input.Query, docType)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Results[i] = SearchResultOutput{
			Content: records[i].Text,
			Source:  records[i].Metadata.Source,
			Type:    records[i].Metadata.Type.String(),
		}
	}

	return nil, output, nil
}

// handleKeywordSearch handles the keyword_search tool invocation.
func (s *Server) handleKeywordSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KeywordSearchInput,
) (*mcp.CallToolResult, KeywordSearchOutput, error) {
	docType, err := scopeToType(input.Scope)
	if err != nil {
		return nil, KeywordSearchOutput{}, err
	}

	snippets, err := s.ports.Knowledge.KeywordSearch(ctx, input.Keyword, docType)
	if err != nil {
		return nil, KeywordSearchOutput{}, err
	}

	return nil, KeywordSearchOutput{Snippets: snippets, Count: len(snippets)}, nil
}

// scopeToType maps a tool scope argument onto the type taxonomy.
// An empty scope defaults to searching everything.
func scopeToType(scope string) (domain.DocType, error) {
	if scope == "" {
		return domain.DocTypeAll, nil
	}

	docType := domain.DocType(scope)
	if err := docType.Validate(); err != nil {
		return "", fmt.Errorf("invalid scope %q: %w", scope, err)
	}
	return docType, nil
}
