package driven

import "context"

// Normaliser converts one file format to plain text.
// Implementations are selected by file extension.
type Normaliser interface {
	// Extensions returns the file extensions this normaliser handles,
	// lower-case and including the leading dot (".md", ".pdf").
	Extensions() []string

	// Normalise extracts plain text from the raw file content.
	// The path is available for extractors that shell out to external
	// tools rather than reading the bytes.
	Normalise(ctx context.Context, path string, content []byte) (string, error)
}

// NormaliserRegistry resolves a normaliser for a file path.
type NormaliserRegistry interface {
	// ForPath returns the normaliser for the path's extension, or
	// domain.ErrUnsupportedFormat if none is registered.
	ForPath(path string) (Normaliser, error)

	// Register adds a normaliser for its declared extensions.
	Register(n Normaliser)
}

// CommandRunner executes an external command and returns its stdout.
// It exists so extractors that shell out (pdftotext) can be tested
// without the tool installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
