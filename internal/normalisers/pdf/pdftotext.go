package pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
	"github.com/custodia-labs/samvidhan-cli/internal/normalisers/plaintext"
)

// Ensure BulkLoader implements the interface.
var _ driven.BulkLoader = (*BulkLoader)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// pdfToTextBinary is the poppler command used for bulk extraction.
const pdfToTextBinary = "pdftotext"

// CheckAvailable reports whether pdftotext is on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(pdfToTextBinary); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions explains how to install pdftotext.
func InstallInstructions() string {
	return `pdftotext is provided by poppler:
  macOS:          brew install poppler
  Debian/Ubuntu:  sudo apt install poppler-utils
  Fedora:         sudo dnf install poppler-utils`
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return out, err
}

// BulkLoader extracts every PDF under a directory tree with pdftotext.
// Output pages are separated by form feeds.
type BulkLoader struct {
	runner driven.CommandRunner
}

// NewBulkLoader creates a bulk loader that runs the real pdftotext.
func NewBulkLoader() *BulkLoader {
	return &BulkLoader{runner: execRunner{}}
}

// NewBulkLoaderWithRunner creates a bulk loader with a custom command runner.
func NewBulkLoaderWithRunner(runner driven.CommandRunner) *BulkLoader {
	return &BulkLoader{runner: runner}
}

// LoadDir extracts all PDFs found recursively under dir.
// Files that fail are logged and skipped.
func (b *BulkLoader) LoadDir(ctx context.Context, dir string) ([]domain.SourceDocument, error) {
	paths, err := findPDFs(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, nil
	}

	if _, isExec := b.runner.(execRunner); isExec {
		if err := CheckAvailable(); err != nil {
			return nil, err
		}
	}

	var docs []domain.SourceDocument
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := b.runner.Run(ctx, pdfToTextBinary, "-enc", "UTF-8", path, "-")
		if err != nil {
			logger.Warn("pdftotext failed for %s: %v", path, err)
			continue
		}

		pages := plaintext.SplitPages(filepath.Base(path), string(out))
		if len(pages) == 0 {
			continue
		}
		docs = append(docs, domain.SourceDocument{Path: path, Pages: pages})
	}

	return docs, nil
}

// findPDFs returns every *.pdf under dir (case-insensitive), sorted.
func findPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)
	return paths, err
}
