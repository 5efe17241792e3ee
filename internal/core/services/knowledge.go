package services

import (
	"context"
	"fmt"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driving"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// DefaultQueryK is how many chunks a similarity query returns.
const DefaultQueryK = 4

// KnowledgeService is the retrieval engine over the three corpora.
//
// It is the sole mutator of corpus state: the ingestor and the note
// syncer both act through it. Queries run summary-first: the summary
// corpus picks the most relevant source, then chunks of that source are
// ranked against the query.
type KnowledgeService struct {
	corpora  driven.CorpusProvider
	embedder driven.EmbeddingService
	ingestor *Ingestor
}

// NewKnowledgeService creates the retrieval engine.
func NewKnowledgeService(
	corpora driven.CorpusProvider,
	embedder driven.EmbeddingService,
	ingestor *Ingestor,
) *KnowledgeService {
	return &KnowledgeService{
		corpora:  corpora,
		embedder: embedder,
		ingestor: ingestor,
	}
}

// List returns the source paths of all indexed entries of the type.
func (s *KnowledgeService) List(ctx context.Context, docType domain.DocType) ([]string, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}

	records, err := s.summaries().Get(ctx, domain.Filter{Type: docType})
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	seen := make(map[string]bool, len(records))
	paths := make([]string, 0, len(records))
	for _, record := range records {
		if !seen[record.Metadata.Source] {
			seen[record.Metadata.Source] = true
			paths = append(paths, record.Metadata.Source)
		}
	}

	return paths, nil
}

// Exists reports whether a summary record exists for (path, docType).
func (s *KnowledgeService) Exists(ctx context.Context, path string, docType domain.DocType) (bool, error) {
	if err := docType.Validate(); err != nil {
		return false, err
	}

	records, err := s.summaries().Get(ctx, domain.Filter{Source: path, Type: docType})
	if err != nil {
		return false, fmt.Errorf("look up summary: %w", err)
	}

	return len(records) > 0, nil
}

// Ingest processes each path through the ingestion pipeline.
// Outcomes are reported per path; a failing path never aborts its
// siblings.
func (s *KnowledgeService) Ingest(
	ctx context.Context, paths []string, docType domain.DocType,
) ([]domain.PathReport, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}
	if !docType.Concrete() {
		return nil, fmt.Errorf("%w: ingestion requires a concrete type, got %q",
			domain.ErrInvalidDocType, docType)
	}

	reports := make([]domain.PathReport, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		status, err := s.ingestor.Ingest(ctx, path, docType)
		if err != nil {
			logger.Warn("Ingest failed for %s: %v", path, err)
			reports = append(reports, domain.PathReport{Path: path, Status: domain.PathFailed, Err: err})
			continue
		}
		reports = append(reports, domain.PathReport{Path: path, Status: status})
	}

	return reports, nil
}

// Delete removes each path's chunks and then its summary.
// Chunks go first so a mid-operation failure cannot leave chunks whose
// summary is already gone.
func (s *KnowledgeService) Delete(
	ctx context.Context, paths []string, docType domain.DocType,
) ([]domain.PathReport, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}

	reports := make([]domain.PathReport, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, s.deleteOne(ctx, path, docType))
	}

	return reports, nil
}

// deleteOne removes one path's records and reports the outcome.
func (s *KnowledgeService) deleteOne(ctx context.Context, path string, docType domain.DocType) domain.PathReport {
	filter := domain.Filter{Source: path, Type: docType}

	summaryRecords, err := s.summaries().Get(ctx, filter)
	if err != nil {
		return domain.PathReport{Path: path, Status: domain.PathFailed,
			Err: fmt.Errorf("look up summary: %w", err)}
	}

	deleted := false
	for _, corpus := range s.chunkCorpora(docType) {
		chunkRecords, err := corpus.Get(ctx, filter)
		if err != nil {
			return domain.PathReport{Path: path, Status: domain.PathFailed,
				Err: fmt.Errorf("look up chunks: %w", err)}
		}
		if len(chunkRecords) == 0 {
			continue
		}

		ids := recordIDs(chunkRecords)
		if err := corpus.Delete(ctx, ids); err != nil {
			return domain.PathReport{Path: path, Status: domain.PathFailed,
				Err: fmt.Errorf("delete chunks: %w", err)}
		}
		logger.Debug("Deleted %d chunks for %s", len(ids), path)
		deleted = true
	}

	if len(summaryRecords) > 0 {
		ids := recordIDs(summaryRecords)
		if err := s.summaries().Delete(ctx, ids); err != nil {
			// The chunks are already gone; the summary must follow or
			// it will shadow a re-ingest.
			return domain.PathReport{Path: path, Status: domain.PathFailed,
				Err: fmt.Errorf("delete summary: %w", err)}
		}
		logger.Debug("Deleted %d summary records for %s", len(ids), path)
		deleted = true
	}

	if !deleted {
		return domain.PathReport{Path: path, Status: domain.PathNotFound}
	}
	return domain.PathReport{Path: path, Status: domain.PathDeleted}
}

// Query performs two-stage retrieval: the best-matching summary selects
// a source, then chunks of that source are ranked against the query.
// Search failures degrade to an empty result rather than propagating.
func (s *KnowledgeService) Query(
	ctx context.Context, query string, docType domain.DocType,
) ([]domain.Record, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}
	if s.embedder == nil {
		logger.Warn("Query skipped: embedding service unavailable")
		return []domain.Record{}, nil
	}

	logger.Section("Query")
	logger.Debug("Query: %q, type: %s", query, docType)

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return []domain.Record{}, nil
	}

	// Summaries are small and topic-dense, so a top-1 summary pass is a
	// cheap coarse filter before the chunk-level search.
	summaryHits, err := s.summaries().SimilaritySearch(ctx, vector, 1, domain.Filter{Type: docType})
	if err != nil {
		logger.Warn("Summary search failed: %v", err)
		return []domain.Record{}, nil
	}
	if len(summaryHits) == 0 {
		logger.Debug("No summaries matched")
		return []domain.Record{}, nil
	}

	top := summaryHits[0]
	logger.Debug("Best summary: source=%s type=%s", top.Metadata.Source, top.Metadata.Type)

	chunkCorpus := s.corpora.Corpus(collectionForType(top.Metadata.Type))
	chunks, err := chunkCorpus.SimilaritySearch(ctx, vector, DefaultQueryK,
		domain.Filter{Source: top.Metadata.Source})
	if err != nil {
		logger.Warn("Chunk search failed: %v", err)
		return []domain.Record{}, nil
	}

	logger.Info("Query matched %d chunks from %s", len(chunks), top.Metadata.Source)
	return chunks, nil
}

// GetContent fetches a path's stored chunks and summary metadata.
// An unknown path yields an empty Content, not an error.
func (s *KnowledgeService) GetContent(
	ctx context.Context, path string, docType domain.DocType,
) (domain.Content, error) {
	if err := docType.Validate(); err != nil {
		return domain.Content{}, err
	}

	filter := domain.Filter{Source: path, Type: docType}

	summaryRecords, err := s.summaries().Get(ctx, filter)
	if err != nil {
		return domain.Content{}, fmt.Errorf("look up summary: %w", err)
	}
	if len(summaryRecords) == 0 {
		return domain.Content{}, nil
	}

	var content domain.Content
	for _, record := range summaryRecords {
		content.Metadatas = append(content.Metadatas, record.Metadata)
	}

	// The summary metadata says which chunk corpora hold this path.
	for _, record := range summaryRecords {
		corpus := s.corpora.Corpus(collectionForType(record.Metadata.Type))
		chunks, err := corpus.Get(ctx, domain.Filter{Source: path, Type: record.Metadata.Type})
		if err != nil {
			return domain.Content{}, fmt.Errorf("fetch chunks: %w", err)
		}
		for _, chunk := range chunks {
			content.Texts = append(content.Texts, chunk.Text)
		}
	}

	return content, nil
}

// KeywordSearch returns chunk texts containing the keyword.
// The match is case-sensitive; DocTypeAll unions both chunk corpora.
func (s *KnowledgeService) KeywordSearch(
	ctx context.Context, keyword string, docType domain.DocType,
) ([]string, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}

	texts := make([]string, 0)
	for _, corpus := range s.chunkCorpora(docType) {
		records, err := corpus.ContainsText(ctx, keyword)
		if err != nil {
			return nil, fmt.Errorf("keyword search: %w", err)
		}
		for _, record := range records {
			texts = append(texts, record.Text)
		}
	}

	return texts, nil
}

// summaries returns the summary corpus.
func (s *KnowledgeService) summaries() driven.Corpus {
	return s.corpora.Corpus(driven.CollectionSummaries)
}

// chunkCorpora returns the chunk corpora the type targets.
func (s *KnowledgeService) chunkCorpora(docType domain.DocType) []driven.Corpus {
	if docType.Concrete() {
		return []driven.Corpus{s.corpora.Corpus(collectionForType(docType))}
	}
	return []driven.Corpus{
		s.corpora.Corpus(driven.CollectionDocuments),
		s.corpora.Corpus(driven.CollectionNotes),
	}
}

func recordIDs(records []domain.Record) []string {
	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}
	return ids
}
