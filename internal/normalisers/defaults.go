package normalisers

import (
	"github.com/keeper-labs/keeper-cli/internal/normalisers/docx"
	"github.com/keeper-labs/keeper-cli/internal/normalisers/markdown"
	"github.com/keeper-labs/keeper-cli/internal/normalisers/pdf"
	"github.com/keeper-labs/keeper-cli/internal/normalisers/plaintext"
)

// NewDefaultRegistry creates a registry with all built-in normalisers:
// .md, .txt, .pdf and .docx.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}
