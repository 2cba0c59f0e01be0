// Package pdf extracts page-level text from PDF documents.
//
// Two strategies are provided. Normaliser reads each page in-process with
// github.com/ledongthuc/pdf. BulkLoader shells out to pdftotext for a whole
// directory and is used as the fallback when in-process extraction yields
// nothing (scanned or unusually encoded files).
package pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.PageExtractor = (*Normaliser)(nil)

// ErrNoText indicates a PDF opened fine but no page yielded text.
var ErrNoText = errors.New("no extractable text")

// Normaliser extracts text page by page.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pdf"}
}

// Extract reads every page of the PDF at path. Pages that fail to decode
// are logged and skipped; page numbers stay 1-based and gap-preserving.
func (n *Normaliser) Extract(ctx context.Context, path string) (doc *domain.SourceDocument, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parse %s: %v", filepath.Base(path), r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	source := filepath.Base(path)
	doc = &domain.SourceDocument{Path: path}

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("%s: page %d: %v", source, i, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		doc.Pages = append(doc.Pages, domain.Page{
			Text:       text,
			Source:     source,
			PageNumber: i,
		})
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoText)
	}

	logger.Debug("%s: extracted %d of %d pages", source, len(doc.Pages), reader.NumPage())
	return doc, nil
}
