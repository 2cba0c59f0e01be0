package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a document format no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrAINotConfigured indicates an embedding or LLM provider is missing
	// required settings such as an API key.
	ErrAINotConfigured = errors.New("AI provider not configured")

	// Index Build Errors.

	// ErrDataSource indicates the corpus directory is missing or unreadable.
	ErrDataSource = errors.New("data source unavailable")

	// ErrNoDocuments indicates no pages could be extracted from the corpus,
	// even after the bulk fallback loader ran.
	ErrNoDocuments = errors.New("no documents loaded")

	// ErrEmptyCorpus indicates the chunker produced no chunks.
	ErrEmptyCorpus = errors.New("corpus produced no chunks")

	// ErrDimensionMismatch indicates vectors of differing length in one index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// Remote Service Errors.

	// ErrEmbeddingService indicates the embedding service failed or timed out.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrGenerationService indicates the generative model failed, timed out,
	// or returned no usable text.
	ErrGenerationService = errors.New("generation service error")

	// Query Errors.

	// ErrIndexNotFound indicates the persisted index is absent or structurally invalid.
	// The query service refuses to start without it.
	ErrIndexNotFound = errors.New("index not found")

	// ErrEmptyQuestion indicates a blank question.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrEmptyScenario indicates a blank scenario.
	ErrEmptyScenario = errors.New("scenario is empty")
)

// BuildStage names one stage of the offline index build.
type BuildStage string

// Index build stages, in execution order.
const (
	StageLoad  BuildStage = "load"
	StageChunk BuildStage = "chunk"
	StageEmbed BuildStage = "embed"
	StageBuild BuildStage = "build"
	StageSave  BuildStage = "save"
)

// StageError reports which build stage aborted the run.
type StageError struct {
	Stage BuildStage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("index build failed at %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by user input rather than a
// service failure, so callers can tell "fix your input" from "try again later".
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyQuestion) ||
		errors.Is(err, ErrEmptyScenario) ||
		errors.Is(err, ErrInvalidInput)
}

// IsServiceError reports whether err came from a remote model call.
func IsServiceError(err error) bool {
	return errors.Is(err, ErrEmbeddingService) || errors.Is(err, ErrGenerationService)
}
