package driving

import (
	"context"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

// KnowledgeService is the retrieval engine: the single capability the
// assistant and the notes component consume.
//
// Every operation validates its document type up front and fails fast
// with domain.ErrInvalidDocType for anything outside {document, note, all}.
// Batch operations report per-path outcomes and never abort siblings.
type KnowledgeService interface {
	// List returns the source paths of all indexed entries of the type.
	List(ctx context.Context, docType domain.DocType) ([]string, error)

	// Exists reports whether a summary record exists for (path, type).
	// For DocTypeAll any type counts.
	Exists(ctx context.Context, path string, docType domain.DocType) (bool, error)

	// Ingest loads, summarises, splits, embeds and stores each path.
	// Already-present paths are skipped; per-path failures are
	// reported, not raised.
	Ingest(ctx context.Context, paths []string, docType domain.DocType) ([]domain.PathReport, error)

	// Delete removes each path's chunks and then its summary.
	// Paths with no matching records are reported as not found.
	Delete(ctx context.Context, paths []string, docType domain.DocType) ([]domain.PathReport, error)

	// Query performs two-stage retrieval: the best-matching summary
	// selects a source, then chunks of that source are ranked against
	// the query. Search errors degrade to an empty result.
	Query(ctx context.Context, query string, docType domain.DocType) ([]domain.Record, error)

	// GetContent fetches all stored chunks of a path together with its
	// summary metadata. An unknown path yields an empty Content.
	GetContent(ctx context.Context, path string, docType domain.DocType) (domain.Content, error)

	// KeywordSearch returns chunk texts containing the keyword.
	// For DocTypeAll both chunk corpora are searched.
	KeywordSearch(ctx context.Context, keyword string, docType domain.DocType) ([]string, error)
}
