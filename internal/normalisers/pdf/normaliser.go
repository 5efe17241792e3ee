// Package pdf extracts text from PDF files by shelling out to the
// poppler pdftotext tool. The command runner is an injectable seam so
// tests run without the tool installed.
package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct {
	runner driven.CommandRunner
}

// New creates a PDF normaliser backed by the system pdftotext binary.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pdf"}
}

// Normalise extracts text via `pdftotext <path> -`. The raw file bytes
// are ignored; pdftotext reads the file itself.
func (n *Normaliser) Normalise(ctx context.Context, path string, _ []byte) (string, error) {
	out, err := n.runner.Run(ctx, "pdftotext", path, "-")
	if err != nil {
		return "", fmt.Errorf("extracting pdf text from %s: %w", path, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// execRunner runs commands through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
