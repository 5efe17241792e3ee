// Command keeper is a personal knowledge base with semantic search.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/keeper-labs/keeper-cli/internal/adapters/driven/config/file"
	embeddingds "github.com/keeper-labs/keeper-cli/internal/adapters/driven/embedding/dashscope"
	embeddingol "github.com/keeper-labs/keeper-cli/internal/adapters/driven/embedding/ollama"
	llmds "github.com/keeper-labs/keeper-cli/internal/adapters/driven/llm/dashscope"
	llmol "github.com/keeper-labs/keeper-cli/internal/adapters/driven/llm/ollama"
	"github.com/keeper-labs/keeper-cli/internal/adapters/driven/storage/sqlite"
	"github.com/keeper-labs/keeper-cli/internal/adapters/driving/cli"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
	"github.com/keeper-labs/keeper-cli/internal/core/services"
	"github.com/keeper-labs/keeper-cli/internal/logger"
	"github.com/keeper-labs/keeper-cli/internal/normalisers"
	"github.com/keeper-labs/keeper-cli/internal/splitter"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}
	defer store.Close()

	embedder, llm := buildModelServices(cfg)
	if embedder != nil {
		defer embedder.Close()
	}
	if llm != nil {
		defer llm.Close()
	}

	ingestor := services.NewIngestor(
		normalisers.NewDefaultRegistry(),
		llm,
		embedder,
		store,
		buildSplitter(cfg),
	)
	knowledge := services.NewKnowledgeService(store, embedder, ingestor)
	syncer := services.NewNoteSyncService(notesDir(cfg), knowledge)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Knowledge: knowledge,
		NoteSync:  syncer,
		Config:    cfg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.ExecuteContext(ctx)
}

// buildModelServices constructs the embedding and LLM clients for the
// configured provider. DashScope is the default; "provider = ollama"
// switches to a local Ollama instance.
func buildModelServices(cfg driven.ConfigStore) (driven.EmbeddingService, driven.LLMService) {
	if cfg.GetString(file.KeyProvider) == "ollama" {
		return buildOllamaServices(cfg)
	}
	return buildDashScopeServices(cfg)
}

// buildDashScopeServices constructs DashScope-backed clients. Without
// an API key both are nil; commands that need them degrade or report
// the missing configuration.
func buildDashScopeServices(cfg driven.ConfigStore) (driven.EmbeddingService, driven.LLMService) {
	apiKey := cfg.GetString(file.KeyAPIKey)
	if apiKey == "" {
		apiKey = os.Getenv("DASHSCOPE_API_KEY")
	}
	if apiKey == "" {
		logger.Debug("No DashScope API key configured")
		return nil, nil
	}

	baseURL := cfg.GetString(file.KeyBaseURL)

	var embedder driven.EmbeddingService
	if svc, err := embeddingds.NewEmbeddingService(embeddingds.Config{
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Model:     cfg.GetString(file.KeyEmbeddingModel),
		BatchSize: cfg.GetInt(file.KeyEmbeddingBatch),
	}); err != nil {
		logger.Warn("Embedding service unavailable: %v", err)
	} else {
		embedder = svc
	}

	var llm driven.LLMService
	if svc, err := llmds.NewLLMService(llmds.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   cfg.GetString(file.KeyLLMModel),
	}); err != nil {
		logger.Warn("LLM service unavailable: %v", err)
	} else {
		llm = svc
	}

	return embedder, llm
}

// buildOllamaServices constructs clients for a local Ollama instance.
// Construction cannot fail on configuration alone, so both services
// are always non-nil; unreachable servers surface as request errors.
func buildOllamaServices(cfg driven.ConfigStore) (driven.EmbeddingService, driven.LLMService) {
	baseURL := cfg.GetString(file.KeyOllamaBaseURL)

	var embedder driven.EmbeddingService
	if svc, err := embeddingol.NewEmbeddingService(embeddingol.Config{
		BaseURL: baseURL,
		Model:   cfg.GetString(file.KeyEmbeddingModel),
	}); err != nil {
		logger.Warn("Embedding service unavailable: %v", err)
	} else {
		embedder = svc
	}

	var llm driven.LLMService
	if svc, err := llmol.NewLLMService(llmol.Config{
		BaseURL: baseURL,
		Model:   cfg.GetString(file.KeyLLMModel),
	}); err != nil {
		logger.Warn("LLM service unavailable: %v", err)
	} else {
		llm = svc
	}

	return embedder, llm
}

// buildSplitter constructs the chunk splitter, honouring configured
// overrides for window size and overlap.
func buildSplitter(cfg driven.ConfigStore) *splitter.Splitter {
	var opts []splitter.Option
	if size := cfg.GetInt(file.KeyChunkSize); size > 0 {
		opts = append(opts, splitter.WithChunkSize(size))
	}
	if overlap := cfg.GetInt(file.KeyChunkOverlap); overlap > 0 {
		opts = append(opts, splitter.WithOverlap(overlap))
	}
	return splitter.New(opts...)
}

// notesDir resolves the notes directory, defaulting to ~/.keeper/notes.
func notesDir(cfg driven.ConfigStore) string {
	if dir := cfg.GetString(file.KeyNotesDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes"
	}
	return filepath.Join(home, ".keeper", "notes")
}
