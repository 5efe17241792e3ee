package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidDocType indicates a type outside {document, note, all}.
	// This is programmer-level misuse and is raised to the caller.
	ErrInvalidDocType = errors.New("invalid document type")

	// ErrUnsupportedFormat indicates a file extension with no loader.
	// During batch ingestion it is isolated to the offending file.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the summarisation service is not
	// configured. Ingestion requires it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and similarity queries require it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrNoEmbeddings indicates the embedding service produced no
	// vectors for an input, usually because every batch failed.
	ErrNoEmbeddings = errors.New("no embeddings produced")
)
