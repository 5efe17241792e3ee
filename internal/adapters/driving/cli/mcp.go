package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keeper-labs/keeper-cli/internal/adapters/driving/mcp"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  keeper mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  keeper mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "keeper": {
        "command": "/path/to/keeper",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	// Bring the note index up to date before serving, so agents see
	// the current notes directory without running a sync themselves.
	if noteSyncer != nil && configStore != nil && configStore.GetBool("notes.sync_on_start") {
		if _, err := noteSyncer.Sync(cmd.Context()); err != nil {
			logger.Warn("Note sync on startup failed: %v", err)
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{Knowledge: knowledgeService})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
