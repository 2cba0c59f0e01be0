package domain

// SourceDocument is one corpus file and the pages extracted from it.
// It lives only for the duration of an indexing run.
type SourceDocument struct {
	// Path is the file location on disk.
	Path string

	// Pages holds the extracted pages in reading order.
	Pages []Page
}

// Page is the text of a single page of a source document.
type Page struct {
	// Text is the extracted page text.
	Text string

	// Source is the originating filename (base name, no directory).
	Source string

	// PageNumber is the 1-based page number. Zero means unknown.
	PageNumber int
}

// Chunk represents a retrieval unit cut from exactly one Page.
// Chunks never span pages; provenance always points at the page
// the text was extracted from.
type Chunk struct {
	// ID is the internal index id, assigned when the index is built.
	ID int

	// Text is the chunk content.
	Text string

	// Source is the originating filename.
	Source string

	// PageNumber is the page the chunk was cut from.
	PageNumber int

	// Position is the ordinal of the chunk within its page.
	Position int
}

// Citation returns the source reference for this chunk.
func (c Chunk) Citation() Citation {
	return Citation{Source: c.Source, Page: c.PageNumber}
}

// IndexEntry pairs an embedding with the chunk it was computed from.
type IndexEntry struct {
	Vector []float32
	Chunk  Chunk
}
