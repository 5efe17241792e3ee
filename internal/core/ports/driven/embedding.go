package driven

import "context"

// EmbedResult carries the outcome of a batched document embedding call.
//
// The embedding API accepts at most a fixed number of texts per request,
// so large inputs are submitted as several batches. A failed batch drops
// its texts rather than failing the whole call: Vectors holds the
// surviving embeddings in input order and Failed holds the input indices
// that produced none. Callers decide whether a partial result is usable.
type EmbedResult struct {
	// Vectors are the embeddings of the inputs that succeeded,
	// in input order. len(Vectors) == len(texts) - len(Failed).
	Vectors [][]float32

	// Failed are the indices of inputs whose batch call failed.
	Failed []int

	// TotalTokens is the aggregated token usage across batches.
	TotalTokens int
}

// Complete reports whether every input produced a vector.
func (r *EmbedResult) Complete() bool {
	return len(r.Failed) == 0
}

// EmbeddingService generates vector embeddings from text.
//
// The service distinguishes embedding intent: stored content is embedded
// as "document", search input as "query". The two intents may map to
// different points of the same vector space, so they must not be mixed.
type EmbeddingService interface {
	// EmbedDocuments embeds texts with document intent, batching as
	// required by the remote API. The error is non-nil only for
	// request construction or transport-level failures that prevent
	// any batch from being attempted; per-batch failures are reported
	// through EmbedResult.Failed.
	EmbedDocuments(ctx context.Context, texts []string) (*EmbedResult, error)

	// EmbedQuery embeds a single text with query intent.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model in use.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
