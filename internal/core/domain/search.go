package domain

import "time"

// ScoredChunk is a single retrieval hit.
type ScoredChunk struct {
	// Chunk is the matched chunk with its provenance.
	Chunk Chunk

	// Score is the cosine similarity to the query, higher is closer.
	Score float64
}

// RetrievalResult holds up to k hits ordered by descending score.
// There is no score threshold: callers receive min(k, n) chunks.
type RetrievalResult []ScoredChunk

// Chunks returns the retrieved chunks in rank order.
func (r RetrievalResult) Chunks() []Chunk {
	chunks := make([]Chunk, len(r))
	for i, hit := range r {
		chunks[i] = hit.Chunk
	}
	return chunks
}

// Texts returns the retrieved chunk texts in rank order.
func (r RetrievalResult) Texts() []string {
	texts := make([]string, len(r))
	for i, hit := range r {
		texts[i] = hit.Chunk.Text
	}
	return texts
}

// Citations returns the deduplicated citations of the result.
func (r RetrievalResult) Citations() []Citation {
	return DedupeCitations(r.Chunks())
}

// IndexManifest describes a persisted index artifact.
type IndexManifest struct {
	// BuildID uniquely identifies one build run.
	BuildID string

	// EmbeddingModel is the model that produced the vectors.
	EmbeddingModel string

	// Dimensions is the vector length shared by every entry.
	Dimensions int

	// Count is the number of entries.
	Count int

	// ChunkSize and ChunkOverlap record the chunker configuration.
	ChunkSize    int
	ChunkOverlap int

	// CreatedAt is when the artifact was written.
	CreatedAt time.Time
}
