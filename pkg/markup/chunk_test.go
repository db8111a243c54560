package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected []string
	}{
		{
			name:     "Empty string yields one empty chunk",
			input:    "",
			limit:    10,
			expected: []string{""},
		},
		{
			name:     "Short string is a single chunk",
			input:    "hello",
			limit:    10,
			expected: []string{"hello"},
		},
		{
			name:     "Exact limit is a single chunk",
			input:    "hello",
			limit:    5,
			expected: []string{"hello"},
		},
		{
			name:     "One over the limit splits",
			input:    "hello!",
			limit:    5,
			expected: []string{"hello", "!"},
		},
		{
			name:     "Splits mid-word",
			input:    "hello world",
			limit:    4,
			expected: []string{"hell", "o wo", "rld"},
		},
		{
			name:     "Non-positive limit returns input whole",
			input:    "hello",
			limit:    0,
			expected: []string{"hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Chunk(tt.input, tt.limit))
		})
	}
}

func TestChunkConcatenationProperty(t *testing.T) {
	inputs := []string{
		"",
		"a",
		strings.Repeat("x", 99),
		strings.Repeat("x", 100),
		strings.Repeat("x", 101),
		strings.Repeat("слово ", 50),
	}

	for _, input := range inputs {
		chunks := Chunk(input, 100)
		require.NotEmpty(t, chunks)
		assert.Equal(t, input, strings.Join(chunks, ""))
		for i, c := range chunks {
			if i < len(chunks)-1 {
				assert.Len(t, []rune(c), 100, "non-final chunk must be exactly the limit")
			} else {
				assert.LessOrEqual(t, len([]rune(c)), 100)
			}
		}
	}
}

func TestChunkLongResponse(t *testing.T) {
	input := strings.Repeat("a", 9000)
	chunks := Chunk(input, 4096)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4096)
	assert.Len(t, chunks[1], 4096)
	assert.Len(t, chunks[2], 9000-2*4096)
	assert.Equal(t, input, strings.Join(chunks, ""))
}

func TestChunkDoesNotSplitRunes(t *testing.T) {
	input := strings.Repeat("ф", 10)
	chunks := Chunk(input, 3)

	require.Len(t, chunks, 4)
	assert.Equal(t, input, strings.Join(chunks, ""))
	for _, c := range chunks {
		for _, r := range c {
			assert.Equal(t, 'ф', r, "chunk boundary split a multi-byte rune")
		}
	}
}
