// Package plaintext handles plain text files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt"}
}

// Normalise returns the content as a string, dropping invalid UTF-8
// sequences so downstream embedding requests stay well-formed JSON.
func (n *Normaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	return strings.TrimSpace(sanitiseUTF8(string(content))), nil
}

// sanitiseUTF8 removes invalid byte sequences from a string.
func sanitiseUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	v := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		v = append(v, r)
	}
	return string(v)
}
