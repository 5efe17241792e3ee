package domain

// Metadata tags a record with its origin.
// Summary records and chunk records for the same source carry the same
// (Source, Type) pair; that pair is the join key between the two tiers.
type Metadata struct {
	// Source is the path of the file the record came from.
	Source string

	// Type is the document type the record was ingested as.
	Type DocType
}

// Record is one embedded text entry in a corpus.
// In the summary corpus Text is a generated summary; in the chunk corpora
// it is a slice of the source's full text.
type Record struct {
	// ID is the unique identifier, generated at insert time.
	ID string

	// Text is the embedded content.
	Text string

	// Vector is the embedding of Text. It is computed once at insert
	// time and never recomputed; updates are delete-then-reinsert.
	Vector []float32

	// Metadata is the (source, type) origin tag.
	Metadata Metadata
}

// Filter is an exact-match conjunction over record metadata.
// Zero values match anything, so the zero Filter matches every record.
type Filter struct {
	// Source matches records from this path, if non-empty.
	Source string

	// Type matches records of this type, if set and concrete.
	// DocTypeAll behaves like unset.
	Type DocType
}

// Matches reports whether the metadata satisfies the filter.
func (f Filter) Matches(m Metadata) bool {
	if f.Source != "" && f.Source != m.Source {
		return false
	}
	if f.Type.Concrete() && f.Type != m.Type {
		return false
	}
	return true
}

// Content is the result of fetching a source's stored text.
type Content struct {
	// Texts holds every chunk of the source, order unspecified.
	Texts []string

	// Metadatas holds the summary metadata entries that matched.
	Metadatas []Metadata
}

// Empty reports whether nothing was found.
func (c Content) Empty() bool {
	return len(c.Texts) == 0 && len(c.Metadatas) == 0
}
