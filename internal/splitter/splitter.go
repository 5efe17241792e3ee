// Package splitter divides normalised document text into fixed-size
// chunks for embedding. It wraps langchaingo's recursive character
// splitter, which prefers paragraph and sentence boundaries before
// falling back to hard cuts.
package splitter

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// DefaultChunkSize is the default chunk window in characters.
const DefaultChunkSize = 400

// DefaultChunkOverlap is the default overlap between chunks.
const DefaultChunkOverlap = 0

// Splitter chunks text recursively on structural boundaries.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

// Option configures the splitter.
type Option func(*config)

type config struct {
	chunkSize int
	overlap   int
}

// WithChunkSize sets the chunk window in characters.
func WithChunkSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks.
func WithOverlap(overlap int) Option {
	return func(c *config) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	cfg := config{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Overlap must stay below the window or chunks never advance.
	if cfg.overlap >= cfg.chunkSize {
		cfg.overlap = cfg.chunkSize / 4
	}

	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.chunkSize),
			textsplitter.WithChunkOverlap(cfg.overlap),
		),
	}
}

// Split divides text into chunks. Empty text yields no chunks.
func (s *Splitter) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	chunks, err := s.inner.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("splitting text: %w", err)
	}
	return chunks, nil
}
