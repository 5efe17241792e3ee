package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

type fakeNormaliser struct {
	exts []string
}

func (f *fakeNormaliser) Extensions() []string { return f.exts }

func (f *fakeNormaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	return string(content), nil
}

func TestForPath(t *testing.T) {
	r := NewRegistry()
	md := &fakeNormaliser{exts: []string{".md"}}
	r.Register(md)

	n, err := r.ForPath("/notes/todo.md")
	require.NoError(t, err)
	assert.Same(t, md, n)

	// Extension match is case-insensitive.
	n, err = r.ForPath("/notes/TODO.MD")
	require.NoError(t, err)
	assert.Same(t, md, n)
}

func TestForPath_Unsupported(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeNormaliser{exts: []string{".md"}})

	_, err := r.ForPath("/notes/archive.tar.gz")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = r.ForPath("/notes/noextension")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestDefaultRegistry_CoversSpecFormats(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{".docx", ".md", ".pdf", ".txt"}, r.Extensions())
}
