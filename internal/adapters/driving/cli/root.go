// Package cli implements the keeper command line interface.
// Commands are thin adapters over the driving ports; all retrieval and
// ingestion logic lives in the core services.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driving"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

// version is set via SetVersion at startup.
var version = "dev"

// Injected services. Set once by SetServices before Execute.
var (
	knowledgeService driving.KnowledgeService
	noteSyncer       driving.NoteSyncer
	configStore      driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "keeper",
	Short: "Personal knowledge base with semantic search",
	Long: `Keeper indexes your documents and notes into a local knowledge base
and answers natural language queries over them.

Files are summarised, split into chunks and embedded; queries first
match against summaries to pick the most relevant source, then return
the best chunks of that source.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates everything the CLI needs.
type Services struct {
	Knowledge driving.KnowledgeService
	NoteSync  driving.NoteSyncer
	Config    driven.ConfigStore
}

// SetServices injects the service implementations.
func SetServices(s Services) {
	knowledgeService = s.Knowledge
	noteSyncer = s.NoteSync
	configStore = s.Config
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
// Long-running commands (mcp serve, notes sync --watch) stop when the
// context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
