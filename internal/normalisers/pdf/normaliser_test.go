package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error

	gotName string
	gotArgs []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.gotName = name
	m.gotArgs = args
	return m.output, m.err
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().Extensions())
}

func TestNormalise(t *testing.T) {
	runner := &mockRunner{output: []byte("page one text\n\f")}
	n := NewWithRunner(runner)

	text, err := n.Normalise(context.Background(), "/docs/report.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "page one text", text)

	assert.Equal(t, "pdftotext", runner.gotName)
	assert.Equal(t, []string{"/docs/report.pdf", "-"}, runner.gotArgs)
}

func TestNormalise_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("pdftotext: not found")}
	n := NewWithRunner(runner)

	_, err := n.Normalise(context.Background(), "/docs/report.pdf", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.pdf")
}
