// Package sqlite persists index entries in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each index artifact carries its own chunks.db holding
// the chunk text, provenance and embedding of every entry.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations. Only Open
// migrates. OpenReadOnly checks the recorded version and leaves the file
// untouched.
//
// # Embeddings
//
// Vectors are stored as little-endian float32 BLOBs.
package sqlite
