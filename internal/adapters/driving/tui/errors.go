package tui

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("tui: answer service is required")

// ErrMissingScenarioService is returned when the scenario service is not provided.
var ErrMissingScenarioService = errors.New("tui: scenario service is required")
