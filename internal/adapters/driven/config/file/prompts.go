package file

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/samvidhan-cli/internal/core/ports/driven"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed defaults/*.txt
var defaultFS embed.FS

// placeholders is the number of %s verbs each known prompt must carry.
var placeholders = map[string]int{
	driven.PromptAnswer:   2,
	driven.PromptScenario: 1,
}

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// Initialisation is lazy: files are only created when first accessed.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to HomeDir()/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := HomeDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(home, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// DefaultPrompt returns the embedded template for name.
func DefaultPrompt(name string) (string, bool) {
	data, err := defaultFS.ReadFile("defaults/" + name + ".txt")
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Load returns the prompt template for the given name.
// A user file whose %s placeholder count does not match the default, or
// that uses any verb other than %s and %%, is ignored in favour of the
// embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := DefaultPrompt(name); ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := DefaultPrompt(name); ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	if want, known := placeholders[name]; known {
		if got, err := countPlaceholders(prompt); err != nil || got != want {
			logger.Warn("prompt %q needs exactly %d %%s placeholders (write %%%% for a literal %%), using built-in default",
				name, want)
			prompt, _ = DefaultPrompt(name)
		}
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// countPlaceholders counts the %s verbs in a template, failing on any
// other verb so Sprintf never renders a %!(...) marker.
func countPlaceholders(template string) (int, error) {
	n := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 == len(template) {
			return 0, fmt.Errorf("trailing %% at offset %d", i)
		}
		switch template[i+1] {
		case 's':
			n++
		case '%':
		default:
			return 0, fmt.Errorf("unsupported verb %%%c at offset %d", template[i+1], i)
		}
		i++
	}
	return n, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and writes any missing default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name := range placeholders {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		content, _ := DefaultPrompt(name)
		if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
