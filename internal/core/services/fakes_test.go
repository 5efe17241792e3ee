package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// fakeEmbedder returns canned vectors per text. Texts without a mapping
// get a neutral two-dimensional default so similarity search still works.
type fakeEmbedder struct {
	byText    map[string][]float32
	failTexts map[string]bool
	failAll   bool
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		byText:    make(map[string][]float32),
		failTexts: make(map[string]bool),
	}
}

func (f *fakeEmbedder) vectorFor(text string) []float32 {
	if v, ok := f.byText[text]; ok {
		return v
	}
	return []float32{0.5, 0.5}
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) (*driven.EmbedResult, error) {
	if f.failAll {
		return nil, errors.New("embedding service down")
	}

	result := &driven.EmbedResult{}
	for i, text := range texts {
		if f.failTexts[text] {
			result.Failed = append(result.Failed, i)
			continue
		}
		result.Vectors = append(result.Vectors, f.vectorFor(text))
		result.TotalTokens += len(text)
	}
	return result, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.failAll {
		return nil, errors.New("embedding service down")
	}
	return f.vectorFor(text), nil
}

func (f *fakeEmbedder) ModelName() string { return "fake-embedder" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error { return nil }

// fakeLLM summarises by exact content lookup.
type fakeLLM struct {
	summaries map[string]string
}

func newFakeLLM() *fakeLLM {
	return &fakeLLM{summaries: make(map[string]string)}
}

func (f *fakeLLM) Summarise(_ context.Context, content string) (string, error) {
	if summary, ok := f.summaries[content]; ok {
		return summary, nil
	}
	return "summary of: " + firstLine(content), nil
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	return "generated: " + prompt, nil
}

func (f *fakeLLM) ModelName() string { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error { return nil }

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// rawNormaliser passes file content through as trimmed plain text.
type rawNormaliser struct{}

func (rawNormaliser) Extensions() []string { return []string{".md", ".txt"} }

func (rawNormaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	return strings.TrimSpace(string(content)), nil
}

// fakeRegistry accepts .md and .txt and rejects everything else.
type fakeRegistry struct{}

func (fakeRegistry) ForPath(path string) (driven.Normaliser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt":
		return rawNormaliser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
}

func (fakeRegistry) Register(driven.Normaliser) {}

// paragraphSplitter chunks on blank lines.
type paragraphSplitter struct{}

func (paragraphSplitter) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	parts := strings.Split(text, "\n\n")
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks, nil
}
