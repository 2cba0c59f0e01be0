package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NoAnswerText is shown when an answer renders to nothing.
const NoAnswerText = "Sorry, I couldn't find an answer."

// Boundary failure messages.
const (
	AnswerFailureMessage   = "Failed to generate answer for constitutional question."
	ScenarioFailureMessage = "Failed to analyze the legal scenario."
)

// Citation references the source of a retrieved chunk.
type Citation struct {
	Source string
	// Page is optional; zero omits it from the rendered citation.
	Page int
}

// String renders the citation as "A.pdf (Page 1)", or just "A.pdf" without a page.
func (c Citation) String() string {
	if c.Page == 0 {
		return c.Source
	}
	return fmt.Sprintf("%s (Page %d)", c.Source, c.Page)
}

// DedupeCitations returns one citation per distinct rendered reference,
// in first-occurrence order.
func DedupeCitations(chunks []Chunk) []Citation {
	seen := make(map[string]bool, len(chunks))
	var citations []Citation
	for _, c := range chunks {
		citation := c.Citation()
		key := citation.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		citations = append(citations, citation)
	}
	return citations
}

// Answer is a generated answer grounded in retrieved chunks.
type Answer struct {
	Question  string
	Text      string
	Citations []Citation
}

// Render returns the answer text followed by the citation trailer.
// The trailer is only appended when there are citations.
func (a *Answer) Render() string {
	text := a.Text
	if strings.TrimSpace(text) == "" {
		text = NoAnswerText
	}
	if len(a.Citations) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n**Sources:**")
	for _, c := range a.Citations {
		b.WriteString("\n- ")
		b.WriteString(c.String())
	}
	return b.String()
}

// FailureKind classifies a structured failure for the caller.
type FailureKind string

// Failure kinds.
const (
	FailureInvalidInput       FailureKind = "invalid_input"
	FailureServiceUnavailable FailureKind = "service_unavailable"
	FailureIndexUnavailable   FailureKind = "index_unavailable"
	FailureInternal           FailureKind = "internal"
)

// Failure is the structured error shape returned across the query boundary
// in place of a raw fault.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
}

// NewFailure classifies err into a Failure carrying the given message.
// Input errors use the error text itself as the message so the caller
// sees what to fix.
func NewFailure(err error, message string) *Failure {
	f := &Failure{
		Kind:    FailureInternal,
		Error:   err.Error(),
		Message: message,
	}
	switch {
	case IsInputError(err):
		f.Kind = FailureInvalidInput
		f.Message = err.Error()
	case IsServiceError(err):
		f.Kind = FailureServiceUnavailable
	case errors.Is(err, ErrIndexNotFound):
		f.Kind = FailureIndexUnavailable
	}
	return f
}

// String renders the failure for a terminal: the message, then the cause
// when it adds anything.
func (f *Failure) String() string {
	if f.Error == "" || f.Error == f.Message {
		return f.Message
	}
	return f.Message + ": " + f.Error
}

// AnswerResponse is the boundary result of a question: exactly one of
// Answer or Failure is set.
type AnswerResponse struct {
	Question string
	Answer   *Answer
	Failure  *Failure
}

// ScenarioResponse is the boundary result of a scenario analysis.
type ScenarioResponse struct {
	Scenario string
	Analysis string
	Failure  *Failure
}

// ExampleScenarios returns sample scenarios offered to new users.
func ExampleScenarios() []string {
	return []string{
		"A state government passes a law restricting online speech criticizing its ministers, citing maintenance of public order. Is this constitutional?",
		"A private school refuses admission based on religion. What does the Constitution say?",
		"Government wants to acquire private land for highway. What are the constitutional provisions?",
	}
}
