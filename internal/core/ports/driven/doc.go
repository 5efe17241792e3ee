// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): corpora, the embedding service, the
// summarisation LLM, document normalisers, and the config store.
package driven
