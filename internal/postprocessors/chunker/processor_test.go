package chunker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		assert.Equal(t, 800, p.ChunkSize())
		assert.Equal(t, 100, p.Overlap())
	})

	t.Run("custom values", func(t *testing.T) {
		p := New(WithChunkSize(500), WithOverlap(50))
		assert.Equal(t, 500, p.ChunkSize())
		assert.Equal(t, 50, p.Overlap())
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		assert.Less(t, p.Overlap(), p.ChunkSize())
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		assert.Equal(t, DefaultChunkSize, p.ChunkSize())
		assert.Equal(t, DefaultChunkOverlap, p.Overlap())
	})
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}

func TestSplitText_ShortPageYieldsOneChunk(t *testing.T) {
	p := New()
	text := "  Article 14. Equality before law.  "

	chunks := p.SplitText(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Article 14. Equality before law.", chunks[0])
}

func TestSplitText_Blank(t *testing.T) {
	assert.Empty(t, New().SplitText(" \n\t "))
}

func TestSplitText_PrefersParagraphBoundaries(t *testing.T) {
	p := New(WithChunkSize(60), WithOverlap(0))
	para1 := "The State shall not deny to any person equality before law."
	para2 := "No citizen shall be discriminated against on grounds of religion."
	require.LessOrEqual(t, len(para1), 60)

	chunks := p.SplitText(para1 + "\n\n" + para2)

	require.NotEmpty(t, chunks)
	assert.Equal(t, para1, chunks[0])
}

func TestSplitText_FallsBackToCharacterCuts(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(2))
	text := strings.Repeat("x", 35)

	chunks := p.SplitText(text)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 10)
	}
	assert.Equal(t, strings.Repeat("x", 10), chunks[0])
}

func TestSplitText_CountsRunesNotBytes(t *testing.T) {
	p := New(WithChunkSize(5), WithOverlap(0))

	chunks := p.SplitText("भारत का संविधान")

	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 5)
		assert.True(t, utf8.ValidString(c))
	}
}

// sharedBoundary returns the length of the longest suffix of prev that is
// also a prefix of next.
func sharedBoundary(prev, next string) int {
	for k := min(len(prev), len(next)); k > 0; k-- {
		if strings.HasSuffix(prev, next[:k]) {
			return k
		}
	}
	return 0
}

func TestSplitText_SizeAndOverlapBounds(t *testing.T) {
	words := make([]string, 400)
	for i := range words {
		words[i] = fmt.Sprintf("w%03d", i)
	}
	text := strings.Join(words, " ")

	tests := []struct {
		size    int
		overlap int
	}{
		{size: 50, overlap: 0},
		{size: 50, overlap: 10},
		{size: 80, overlap: 20},
		{size: 120, overlap: 60},
		{size: 800, overlap: 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("s=%d,o=%d", tt.size, tt.overlap), func(t *testing.T) {
			p := New(WithChunkSize(tt.size), WithOverlap(tt.overlap))

			chunks := p.SplitText(text)

			require.Greater(t, len(chunks), 1)
			for i, c := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), tt.size, "chunk %d too long", i)
				if i == 0 {
					continue
				}
				shared := sharedBoundary(chunks[i-1], c)
				assert.LessOrEqual(t, shared, tt.overlap, "chunk %d overlaps too much", i)
				if tt.overlap >= 10 {
					assert.Positive(t, shared, "chunk %d should repeat trailing text", i)
				}
			}

			// Every word survives chunking.
			joined := strings.Join(chunks, " ")
			for _, w := range words {
				assert.Contains(t, joined, w)
			}
		})
	}
}

func TestProcess_PreservesPageProvenance(t *testing.T) {
	p := New(WithChunkSize(40), WithOverlap(5))
	pages := []domain.Page{
		{Text: "Part III. Fundamental Rights. Article 12 defines the State.", Source: "a.pdf", PageNumber: 1},
		{Text: "   ", Source: "a.pdf", PageNumber: 2},
		{Text: "Article 32.", Source: "b.pdf", PageNumber: 7},
	}

	chunks, err := p.Process(context.Background(), pages)

	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)
	for i, c := range chunks[:len(chunks)-1] {
		assert.Equal(t, "a.pdf", c.Source)
		assert.Equal(t, 1, c.PageNumber)
		assert.Equal(t, i, c.Position)
	}
	last := chunks[len(chunks)-1]
	assert.Equal(t, domain.Chunk{Text: "Article 32.", Source: "b.pdf", PageNumber: 7}, last)
}

func TestProcess_EmptyCorpus(t *testing.T) {
	p := New()

	_, err := p.Process(context.Background(), []domain.Page{{Text: "\n\n", Source: "a.pdf", PageNumber: 1}})
	assert.True(t, errors.Is(err, domain.ErrEmptyCorpus))

	_, err = p.Process(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrEmptyCorpus))
}

func TestProcess_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, []domain.Page{{Text: "text", Source: "a.pdf", PageNumber: 1}})

	assert.ErrorIs(t, err, context.Canceled)
}
