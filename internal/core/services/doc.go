// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The query path is explicit composition: RetrieverService feeds
// AnswerService, and ScenarioService calls the model directly.
package services
