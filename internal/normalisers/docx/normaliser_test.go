package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

// buildDocx assembles a minimal .docx archive with the given document.xml.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

const sampleXML = `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>First paragraph.</t></r></p>
    <p><r><t>Second </t></r><r><t>paragraph.</t></r></p>
  </body>
</document>`

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, New().Extensions())
}

func TestNormalise(t *testing.T) {
	content := buildDocx(t, sampleXML)

	text, err := New().Normalise(context.Background(), "sample.docx", content)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestNormalise_NotAZip(t *testing.T) {
	_, err := New().Normalise(context.Background(), "broken.docx", []byte("plain text"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	text, err := New().Normalise(context.Background(), "odd.docx", buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, text)
}
