// Package chunker provides a recursive, overlap-aware text chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// separators are tried coarsest first: paragraph, line, sentence,
// whitespace, then single characters.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Processor splits page text into bounded chunks.
// Lengths are measured in characters (runes), not bytes.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits every page into chunks. Each chunk keeps the source and
// page number of the page it was cut from.
func (p *Processor) Process(ctx context.Context, pages []domain.Page) ([]domain.Chunk, error) {
	var chunks []domain.Chunk

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for position, text := range p.SplitText(page.Text) {
			chunks = append(chunks, domain.Chunk{
				Text:       text,
				Source:     page.Source,
				PageNumber: page.PageNumber,
				Position:   position,
			})
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %d pages yielded no text", domain.ErrEmptyCorpus, len(pages))
	}
	return chunks, nil
}

// SplitText splits text into trimmed, non-empty chunks of at most chunkSize
// characters. Text that already fits yields exactly one chunk.
func (p *Processor) SplitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if runeLen(text) <= p.chunkSize {
		return []string{text}
	}
	return p.split(text, separators)
}

// split breaks text on the coarsest separator present, recursing into
// pieces that are still too long with the remaining, finer separators.
func (p *Processor) split(text string, seps []string) []string {
	sep, rest := "", []string(nil)
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep, rest = s, seps[i+1:]
			break
		}
	}

	var pieces []string
	if sep == "" {
		pieces = strings.Split(text, "")
	} else {
		pieces = strings.Split(text, sep)
	}

	var chunks, fitting []string
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		if runeLen(piece) < p.chunkSize {
			fitting = append(fitting, piece)
			continue
		}

		if len(fitting) > 0 {
			chunks = append(chunks, p.merge(fitting, sep)...)
			fitting = nil
		}
		if len(rest) == 0 {
			chunks = appendTrimmed(chunks, piece)
		} else {
			chunks = append(chunks, p.split(piece, rest)...)
		}
	}

	if len(fitting) > 0 {
		chunks = append(chunks, p.merge(fitting, sep)...)
	}
	return chunks
}

// merge greedily joins pieces with sep into chunks no longer than chunkSize.
// When a chunk is emitted, leading pieces are dropped until at most overlap
// characters remain; those carry over as the start of the next chunk.
func (p *Processor) merge(pieces []string, sep string) []string {
	sepLen := runeLen(sep)
	joinCost := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	var chunks, current []string
	total := 0

	for _, piece := range pieces {
		n := runeLen(piece)

		if total+n+joinCost(len(current)) > p.chunkSize && len(current) > 0 {
			chunks = appendTrimmed(chunks, strings.Join(current, sep))

			for total > p.overlap || (total > 0 && total+n+joinCost(len(current)) > p.chunkSize) {
				total -= runeLen(current[0]) + joinCost(len(current)-1)
				current = current[1:]
			}
		}

		current = append(current, piece)
		total += n + joinCost(len(current)-1)
	}

	return appendTrimmed(chunks, strings.Join(current, sep))
}

func appendTrimmed(chunks []string, text string) []string {
	if text = strings.TrimSpace(text); text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
