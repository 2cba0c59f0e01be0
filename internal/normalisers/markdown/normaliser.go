// Package markdown extracts readable text from Markdown documents.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.PageExtractor = (*Normaliser)(nil)

// rewrite is one markup-stripping step.
type rewrite struct {
	pattern *regexp.Regexp
	replace string
}

// rewrites run in order. Paragraph breaks are preserved so the chunker can
// split on them.
var rewrites = []rewrite{
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`(?m)^>\s?`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`), ""},
	{regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`), "$2"},
	{regexp.MustCompile(`(^|\s)[*_]([^*_\n]+)[*_]`), "$1$2"},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// Normaliser handles Markdown documents.
// Markdown has no pages, so each file yields one unnumbered page.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract reads a Markdown file and strips its formatting.
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

// Strip converts Markdown to plain text, keeping paragraph structure.
// Numbered list markers are kept since they often carry clause numbers.
func Strip(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, r := range rewrites {
		content = r.pattern.ReplaceAllString(content, r.replace)
	}
	return strings.TrimSpace(content)
}
