// Package domain defines the core business entities for Samvidhan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: Text of one page of a corpus document
//   - Chunk: A retrieval unit cut from a single page
//   - IndexEntry: An embedding paired with its chunk
//   - Answer: Generated text plus deduplicated citations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
