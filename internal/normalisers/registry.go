package normalisers

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers/html"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers/plaintext"
)

// Registry selects a PageExtractor by file extension.
// Extension matching is case-insensitive.
type Registry struct {
	byExt map[string]driven.PageExtractor
}

// NewRegistry creates a registry holding the given extractors.
// Later extractors win when two claim the same extension.
func NewRegistry(extractors ...driven.PageExtractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.PageExtractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// DefaultRegistry returns a registry for PDF, plain text, Markdown and HTML.
func DefaultRegistry() *Registry {
	return NewRegistry(
		pdf.New(),
		plaintext.New(),
		markdown.New(),
		html.New(),
	)
}

// Register adds an extractor for each of its extensions.
func (r *Registry) Register(e driven.PageExtractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// ForPath returns the extractor for path's extension.
func (r *Registry) ForPath(path string) (driven.PageExtractor, bool) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
