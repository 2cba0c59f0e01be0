// Package filesystem loads and watches a local corpus directory.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Extractors resolves the extractor for a file path.
type Extractors interface {
	ForPath(path string) (driven.PageExtractor, bool)
}

// Loader reads every supported file at the top level of a directory.
// When per-file extraction yields no pages it retries with the bulk
// loader, which walks the tree recursively.
type Loader struct {
	extractors Extractors
	bulk       driven.BulkLoader
}

// NewLoader creates a loader. bulk may be nil to disable the fallback.
func NewLoader(extractors Extractors, bulk driven.BulkLoader) *Loader {
	return &Loader{extractors: extractors, bulk: bulk}
}

// Load returns the non-blank pages of every document in dir, ordered by
// file name then page number.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Page, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrDataSource, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}

	var pages []domain.Page
	files := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		extractor, ok := l.extractors.ForPath(path)
		if !ok {
			logger.Debug("skipping unsupported file %s", entry.Name())
			continue
		}

		doc, err := extractor.Extract(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", entry.Name(), err)
			continue
		}
		files++
		pages = append(pages, nonBlank(doc.Pages)...)
	}

	if len(pages) == 0 && l.bulk != nil {
		logger.Info("per-file extraction found no text in %s, trying bulk extraction", dir)
		docs, err := l.bulk.LoadDir(ctx, dir)
		if err != nil {
			logger.Warn("bulk extraction failed: %v", err)
		}
		files = len(docs)
		for _, doc := range docs {
			pages = append(pages, nonBlank(doc.Pages)...)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoDocuments, dir)
	}

	logger.Info("loaded %d pages from %d documents in %s", len(pages), files, dir)
	return pages, nil
}

// SupportedFiles lists the files in dir that Load would read.
func (l *Loader) SupportedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if _, ok := l.extractors.ForPath(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func nonBlank(pages []domain.Page) []domain.Page {
	out := pages[:0:0]
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			out = append(out, p)
		}
	}
	return out
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
