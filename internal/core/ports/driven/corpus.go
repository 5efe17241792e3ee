package driven

import (
	"context"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

// Collection names within a corpus store. Every deployment holds exactly
// these three: one summary tier plus one chunk tier per concrete type.
const (
	CollectionSummaries = "summaries"
	CollectionDocuments = "documents"
	CollectionNotes     = "notes"
)

// Corpus is a persistent collection of embedded text records with a
// similarity index over them.
//
// Corpora store vectors but never produce them: callers embed texts and
// queries through EmbeddingService and pass the vectors in.
type Corpus interface {
	// Add inserts records built from four parallel slices.
	// All slices must have the same non-zero length; otherwise
	// domain.ErrInvalidInput is returned and nothing is written.
	Add(ctx context.Context, ids, texts []string, vectors [][]float32, metadatas []domain.Metadata) error

	// Get returns all records whose metadata matches the filter.
	// The zero filter matches everything. No match is an empty slice,
	// not an error.
	Get(ctx context.Context, filter domain.Filter) ([]domain.Record, error)

	// SimilaritySearch returns up to k records nearest to the query
	// vector by cosine distance, optionally restricted by the filter.
	// Ties are broken by the store's native order, which is stable for
	// identical store state.
	SimilaritySearch(ctx context.Context, vector []float32, k int, filter domain.Filter) ([]domain.Record, error)

	// ContainsText returns records whose text contains the substring.
	// The match is case-sensitive.
	ContainsText(ctx context.Context, substring string) ([]domain.Record, error)

	// Delete removes records by id. Unknown ids are a no-op.
	Delete(ctx context.Context, ids []string) error
}

// CorpusProvider hands out the named collections of one store.
// All collections of a provider share a single on-disk directory.
type CorpusProvider interface {
	// Corpus returns the collection with the given name, creating it
	// if it does not exist yet.
	Corpus(name string) Corpus

	// Close releases the underlying store.
	Close() error
}
