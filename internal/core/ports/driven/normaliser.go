package driven

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// PageExtractor extracts page-level text from one document format.
type PageExtractor interface {
	// Extensions returns the lower-case file extensions handled, e.g. ".pdf".
	Extensions() []string

	// Extract reads the file at path and returns its pages.
	Extract(ctx context.Context, path string) (*domain.SourceDocument, error)
}

// BulkLoader loads every supported document under a directory in one pass.
// It is the secondary strategy used when per-file extraction yields nothing.
type BulkLoader interface {
	LoadDir(ctx context.Context, dir string) ([]domain.SourceDocument, error)
}

// CommandRunner executes external commands.
// This interface enables testing without actual command execution.
type CommandRunner interface {
	// Run executes a command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
