// Package plaintext extracts pages from plain text files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.PageExtractor = (*Normaliser)(nil)

// Normaliser handles plain text documents.
// Form feed characters separate pages, the same convention pdftotext uses.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text"}
}

// Extract reads a text file and splits it into pages.
func (n *Normaliser) Extract(_ context.Context, path string) (*domain.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not UTF-8 text", domain.ErrUnsupportedFormat, filepath.Base(path))
	}

	return &domain.SourceDocument{
		Path:  path,
		Pages: SplitPages(filepath.Base(path), string(data)),
	}, nil
}

// SplitPages splits text on form feeds into numbered pages, skipping blank
// ones while keeping the original numbering. Text without form feeds is a
// single page with no page number.
func SplitPages(source, text string) []domain.Page {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	parts := strings.Split(text, "\f")
	if len(parts) == 1 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []domain.Page{{Text: text, Source: source}}
	}

	pages := make([]domain.Page, 0, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pages = append(pages, domain.Page{
			Text:       part,
			Source:     source,
			PageNumber: i + 1,
		})
	}
	return pages
}
