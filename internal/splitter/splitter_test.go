package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	s := New()

	chunks, err := s.Split("")

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := New()

	chunks, err := s.Split("the cat sat on the mat")

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "the cat sat on the mat", chunks[0])
}

func TestSplit_LongTextRespectsChunkSize(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(0))

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("lorem ipsum dolor sit amet. ")
	}

	chunks, err := s.Split(b.String())

	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 50)
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	s := New(WithChunkSize(40), WithOverlap(0))

	chunks, err := s.Split("first paragraph here\n\nsecond paragraph here")

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph here", chunks[0])
	assert.Equal(t, "second paragraph here", chunks[1])
}

func TestNew_OverlapClampedBelowChunkSize(t *testing.T) {
	s := New(WithChunkSize(20), WithOverlap(100))

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("word word word word. ")
	}

	// With an unclamped overlap the splitter would never advance.
	chunks, err := s.Split(b.String())

	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}
