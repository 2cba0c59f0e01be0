package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptAnswer grounds an answer in retrieved context.
	// The template expects two %s placeholders: the question, then the context.
	PromptAnswer = "answer"

	// PromptScenario requests a structured analysis of a scenario.
	// The template expects one %s placeholder for the scenario text.
	PromptScenario = "scenario"
)
