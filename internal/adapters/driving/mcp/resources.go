package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Keeper resources.
	uriScheme = "keeper://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Paths of all indexed documents",
		MIMEType:    "application/json",
	}, s.listResource(domain.DocTypeDocument))

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "notes",
		Name:        "notes",
		Description: "Paths of all indexed notes",
		MIMEType:    "application/json",
	}, s.listResource(domain.DocTypeNote))
}

// listResource builds a handler returning the indexed paths of one type.
func (s *Server) listResource(docType domain.DocType) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		paths, err := s.ports.Knowledge.List(ctx, docType)
		if err != nil {
			return nil, fmt.Errorf("listing %ss: %w", docType, err)
		}

		data, err := json.MarshalIndent(paths, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling %s list: %w", docType, err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	}
}
