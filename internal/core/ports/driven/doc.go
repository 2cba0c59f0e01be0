// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Index Build Interfaces
//
//   - DocumentLoader: Reads corpus pages from a directory
//   - PageExtractor: Extracts pages from one file format (PDF, plain text)
//   - BulkLoader: Fallback loader used when per-file extraction yields nothing
//   - Chunker: Splits pages into overlapping chunks
//   - VectorIndexFactory: Builds and loads vector indexes
//
// # Query Interfaces
//
//   - VectorIndex: Read-only k-nearest-neighbour search over a built index
//   - EmbeddingService: Turns text into vectors (index build and query time)
//   - LLMService: Turns a prompt into generated text
//
// # Configuration Interfaces
//
//   - ConfigStore: Application configuration
//   - PromptStore: Prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
