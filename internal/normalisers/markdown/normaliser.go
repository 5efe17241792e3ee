// Package markdown converts Markdown files to plain text by rendering
// them to HTML and extracting the text nodes. Rendering first means
// formatting constructs (links, emphasis, tables) collapse to their
// visible text instead of leaving markup in the indexed content.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct {
	md goldmark.Markdown
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{
		md: goldmark.New(),
	}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md"}
}

// multiNewlines collapses runs of blank lines left over from block
// elements in the rendered HTML.
var multiNewlines = regexp.MustCompile(`\n{3,}`)

// Normalise renders the markdown to HTML and strips the tags.
func (n *Normaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	var html bytes.Buffer
	if err := n.md.Convert(content, &html); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&html)
	if err != nil {
		return "", fmt.Errorf("parsing rendered html: %w", err)
	}

	text := doc.Text()
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
