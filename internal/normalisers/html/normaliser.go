// Package html extracts readable text from HTML documents.
package html

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.PageExtractor = (*Normaliser)(nil)

var (
	invisible    = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)\b.*?</(script|style|noscript|head|svg)>|<!--.*?-->`)
	paragraphTag = regexp.MustCompile(`(?i)</?(p|div|section|article|h[1-6]|table|ul|ol|blockquote|pre)\b[^>]*>`)
	lineTag      = regexp.MustCompile(`(?i)<(br|hr|li|tr)\b[^>]*/?>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
	spaces       = regexp.MustCompile(`[ \t\r\x{00a0}]+`) // NBSP folds to a plain space
	blankLines   = regexp.MustCompile(`\n\s*\n(\s*\n)*`)
)

// Normaliser handles HTML documents.
// HTML has no pages, so each file yields one unnumbered page.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".html", ".htm"}
}

// Extract reads an HTML file and reduces it to text.
func (n *Normaliser) Extract(_ context.Context, path string) (*domain.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := &domain.SourceDocument{Path: path}
	if text := Strip(string(data)); text != "" {
		doc.Pages = []domain.Page{{Text: text, Source: filepath.Base(path)}}
	}
	return doc, nil
}

// Strip removes markup, turning block elements into paragraph breaks
// and line-level elements into newlines.
func Strip(content string) string {
	content = invisible.ReplaceAllString(content, "")
	content = paragraphTag.ReplaceAllString(content, "\n\n")
	content = lineTag.ReplaceAllString(content, "\n")
	content = anyTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = spaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(content)
}
