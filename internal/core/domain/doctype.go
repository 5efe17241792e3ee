package domain

import "fmt"

// DocType classifies entries in the knowledge base.
// Documents and notes live in separate chunk corpora; "all" widens an
// operation to both.
type DocType string

const (
	// DocTypeDocument is an ingested file from the document library.
	DocTypeDocument DocType = "document"

	// DocTypeNote is a hand-written note from the notes directory.
	DocTypeNote DocType = "note"

	// DocTypeAll targets both documents and notes.
	DocTypeAll DocType = "all"
)

// Validate checks that the type is one of the known values.
func (t DocType) Validate() error {
	switch t {
	case DocTypeDocument, DocTypeNote, DocTypeAll:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: document, note, all)", ErrInvalidDocType, string(t))
	}
}

// Concrete reports whether the type names a single chunk corpus.
func (t DocType) Concrete() bool {
	return t == DocTypeDocument || t == DocTypeNote
}

// String returns the string form of the type.
func (t DocType) String() string {
	return string(t)
}
