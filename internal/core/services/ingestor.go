package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

// TextSplitter divides normalised text into chunks for embedding.
type TextSplitter interface {
	Split(text string) ([]string, error)
}

// Ingestor runs the ingestion pipeline for a single file:
// load and normalise, summarise, split, embed, store.
//
// One summary record and N chunk records come out of each run, all
// tagged with the same (source, type) pair. The Ingestor never touches
// corpora for anything but this pipeline; queries and deletes belong to
// the KnowledgeService.
type Ingestor struct {
	normalisers driven.NormaliserRegistry
	llm         driven.LLMService
	embedder    driven.EmbeddingService
	corpora     driven.CorpusProvider
	splitter    TextSplitter
}

// NewIngestor creates an ingestor from its collaborators.
func NewIngestor(
	normalisers driven.NormaliserRegistry,
	llm driven.LLMService,
	embedder driven.EmbeddingService,
	corpora driven.CorpusProvider,
	splitter TextSplitter,
) *Ingestor {
	return &Ingestor{
		normalisers: normalisers,
		llm:         llm,
		embedder:    embedder,
		corpora:     corpora,
		splitter:    splitter,
	}
}

// Ingest processes one file and stores its summary and chunks.
// A path already present as (path, docType) is skipped, which makes
// re-running ingestion over a directory safe.
func (ing *Ingestor) Ingest(ctx context.Context, path string, docType domain.DocType) (domain.PathStatus, error) {
	if !docType.Concrete() {
		return domain.PathFailed, fmt.Errorf("%w: ingestion requires a concrete type, got %q",
			domain.ErrInvalidDocType, docType)
	}
	if ing.llm == nil {
		return domain.PathFailed, domain.ErrLLMUnavailable
	}
	if ing.embedder == nil {
		return domain.PathFailed, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Ingest")
	logger.Debug("Path: %s, type: %s", path, docType)

	summaries := ing.corpora.Corpus(driven.CollectionSummaries)

	// Idempotency guard: an existing summary for (path, type) means the
	// file is already indexed.
	existing, err := summaries.Get(ctx, domain.Filter{Source: path, Type: docType})
	if err != nil {
		return domain.PathFailed, fmt.Errorf("check existing summary: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Already indexed as %s, skipping: %s", docType, path)
		return domain.PathSkipped, nil
	}

	text, err := ing.load(ctx, path)
	if err != nil {
		return domain.PathFailed, err
	}

	summary, err := ing.llm.Summarise(ctx, text)
	if err != nil {
		return domain.PathFailed, fmt.Errorf("summarise %s: %w", path, err)
	}
	logger.Debug("Summary: %d characters", len(summary))

	chunks, err := ing.splitter.Split(text)
	if err != nil {
		return domain.PathFailed, fmt.Errorf("split %s: %w", path, err)
	}
	if len(chunks) == 0 {
		return domain.PathFailed, fmt.Errorf("%w: %s produced no chunks", domain.ErrInvalidInput, path)
	}
	logger.Debug("Split into %d chunks", len(chunks))

	if err := ing.store(ctx, path, docType, summary, chunks); err != nil {
		return domain.PathFailed, err
	}

	logger.Info("Ingested %s: 1 summary + %d chunks", path, len(chunks))
	return domain.PathIngested, nil
}

// load reads the file and normalises it to plain text.
func (ing *Ingestor) load(ctx context.Context, path string) (string, error) {
	normaliser, err := ing.normalisers.ForPath(path)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text, err := normaliser.Normalise(ctx, path, content)
	if err != nil {
		return "", fmt.Errorf("normalise %s: %w", path, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: %s contains no text", domain.ErrInvalidInput, path)
	}

	return text, nil
}

// store embeds the summary and chunks and writes them to their corpora.
// Chunks are written before the summary: the summary's presence is the
// idempotency key, so it must only appear once its chunks exist.
func (ing *Ingestor) store(
	ctx context.Context, path string, docType domain.DocType, summary string, chunks []string,
) error {
	summaryResult, err := ing.embedder.EmbedDocuments(ctx, []string{summary})
	if err != nil {
		return fmt.Errorf("embed summary of %s: %w", path, err)
	}
	if !summaryResult.Complete() {
		return fmt.Errorf("embed summary of %s: %w", path, domain.ErrNoEmbeddings)
	}

	chunkResult, err := ing.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed chunks of %s: %w", path, err)
	}
	if len(chunkResult.Vectors) == 0 {
		return fmt.Errorf("embed chunks of %s: %w", path, domain.ErrNoEmbeddings)
	}
	if !chunkResult.Complete() {
		// Degraded state: the surviving chunks are still stored.
		logger.Warn("Embedding failed for %d of %d chunks of %s, storing the rest",
			len(chunkResult.Failed), len(chunks), path)
		chunks = dropFailed(chunks, chunkResult.Failed)
	}

	metadata := domain.Metadata{Source: path, Type: docType}

	chunkIDs := make([]string, len(chunks))
	chunkMetadatas := make([]domain.Metadata, len(chunks))
	for i := range chunks {
		chunkIDs[i] = uuid.NewString()
		chunkMetadatas[i] = metadata
	}

	chunkCorpus := ing.corpora.Corpus(collectionForType(docType))
	if err := chunkCorpus.Add(ctx, chunkIDs, chunks, chunkResult.Vectors, chunkMetadatas); err != nil {
		return fmt.Errorf("store chunks of %s: %w", path, err)
	}

	summaries := ing.corpora.Corpus(driven.CollectionSummaries)
	err = summaries.Add(ctx,
		[]string{uuid.NewString()},
		[]string{summary},
		summaryResult.Vectors,
		[]domain.Metadata{metadata},
	)
	if err != nil {
		// Best-effort cleanup so the chunks do not outlive a summary
		// that never made it in.
		if cleanupErr := chunkCorpus.Delete(ctx, chunkIDs); cleanupErr != nil {
			logger.Warn("Orphaned chunks left for %s after failed summary insert: %v", path, cleanupErr)
		}
		return fmt.Errorf("store summary of %s: %w", path, err)
	}

	return nil
}

// dropFailed removes the texts at the failed indices, preserving order.
func dropFailed(texts []string, failed []int) []string {
	failedSet := make(map[int]bool, len(failed))
	for _, i := range failed {
		failedSet[i] = true
	}

	kept := make([]string, 0, len(texts)-len(failed))
	for i, text := range texts {
		if !failedSet[i] {
			kept = append(kept, text)
		}
	}
	return kept
}

// collectionForType maps a concrete type to its chunk collection.
func collectionForType(docType domain.DocType) string {
	if docType == domain.DocTypeNote {
		return driven.CollectionNotes
	}
	return driven.CollectionDocuments
}
