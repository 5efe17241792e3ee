// Package domain contains the core business types for the Keeper
// knowledge base: the document type taxonomy, embedded records, metadata
// filters, and the sentinel errors shared across services and adapters.
package domain
