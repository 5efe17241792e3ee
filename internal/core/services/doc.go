// Package services implements the driving port interfaces.
//
// The knowledge service answers queries and manages the indexed
// corpora; the ingestor turns files into summarised, embedded records;
// the note syncer reconciles a notes directory against the index. All
// three orchestrate calls to driven ports (adapters) and hold no
// storage or transport logic of their own.
package services
