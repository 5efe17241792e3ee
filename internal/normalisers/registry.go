// Package normalisers converts supported file formats to plain text.
// One package per format; selection is by file extension.
package normalisers

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser for each extension it declares.
// Later registrations win, which lets callers override defaults.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.Extensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// ForPath returns the normaliser for the path's extension.
func (r *Registry) ForPath(path string) (driven.Normaliser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	n, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			domain.ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}
	return n, nil
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
