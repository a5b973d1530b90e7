package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptExt is the file extension of prompt templates on disk.
const PromptExt = ".tmpl"

//go:embed prompts/*.tmpl
var embedded embed.FS

// PromptStore loads flow prompt templates from user-editable files, falling
// back to the templates embedded in the binary.
//
// Initialisation is lazy: the directory and default files are written on the
// first Load, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a file-based prompt store.
// If promptDir is empty, defaults to ~/.bluequery/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}
	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// DefaultPrompt returns the embedded template for name.
func DefaultPrompt(name string) (string, bool) {
	data, err := embedded.ReadFile("prompts/" + name + PromptExt)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Load returns the template for name. A file on disk wins over the embedded
// default; names with neither return domain.ErrNotFound.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.read(name)
	if err != nil {
		return "", err
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

// Reload clears the cache so the next Load reads from disk again.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// read loads name from disk, then from the embedded defaults.
func (s *PromptStore) read(name string) (string, error) {
	if s.initErr == nil {
		data, err := os.ReadFile(filepath.Join(s.promptDir, name+PromptExt))
		switch {
		case err == nil:
			return strings.TrimSpace(string(data)), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read prompt %q: %w", name, err)
		}
	}
	if prompt, ok := DefaultPrompt(name); ok {
		return strings.TrimSpace(prompt), nil
	}
	return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
}

// initialise creates the prompt directory and writes any missing default
// templates. Existing files are never overwritten.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}
	for _, name := range driven.AllPrompts() {
		content, ok := DefaultPrompt(name)
		if !ok {
			continue
		}
		path := filepath.Join(s.promptDir, name+PromptExt)
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	var files strings.Builder
	for _, name := range driven.AllPrompts() {
		files.WriteString("- `" + name + PromptExt + "`\n")
	}
	content := `# Blue Query Prompts

Each AI flow renders one of these templates before calling the model.

## Files

` + files.String() + `
## Customisation

Templates use Go text/template syntax, e.g. ` + "`{{.Query}}`" + `. Referencing a
field the flow does not provide is an error. While ` + "`bluequery serve`" + ` is
running, edits are picked up automatically; other commands read the files on
start.

Delete a file to restore its default on the next run.
`
	return os.WriteFile(path, []byte(content), 0600)
}
