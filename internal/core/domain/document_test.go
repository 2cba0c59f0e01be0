package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk_Citation(t *testing.T) {
	c := Chunk{Text: "Article 21", Source: "constitution.pdf", PageNumber: 12, Position: 2}

	assert.Equal(t, Citation{Source: "constitution.pdf", Page: 12}, c.Citation())
	assert.Equal(t, "constitution.pdf (Page 12)", c.Citation().String())
}

func TestIndexEntry_Fields(t *testing.T) {
	entry := IndexEntry{
		Vector: []float32{0.1, 0.2, 0.3},
		Chunk:  Chunk{Text: "Preamble", Source: "a.txt"},
	}

	assert.Len(t, entry.Vector, 3)
	assert.Equal(t, "Preamble", entry.Chunk.Text)
}
