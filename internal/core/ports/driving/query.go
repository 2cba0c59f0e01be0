package driving

import (
	"context"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// Retriever finds the chunks most relevant to a question.
type Retriever interface {
	// Retrieve embeds the question and returns the top k chunks.
	Retrieve(ctx context.Context, question string, k int) (domain.RetrievalResult, error)
}

// AnswerService answers questions grounded in retrieved chunks.
type AnswerService interface {
	// Answer returns a grounded answer with deduplicated citations.
	Answer(ctx context.Context, question string) (*domain.Answer, error)

	// Respond is the boundary form of Answer: failures come back as a
	// structured domain.Failure rather than an error.
	Respond(ctx context.Context, question string) domain.AnswerResponse
}

// ScenarioService analyses hypothetical legal scenarios without retrieval.
type ScenarioService interface {
	// Analyze returns the analysis text for a scenario.
	Analyze(ctx context.Context, scenario string) (string, error)

	// Respond is the boundary form of Analyze.
	Respond(ctx context.Context, scenario string) domain.ScenarioResponse
}
