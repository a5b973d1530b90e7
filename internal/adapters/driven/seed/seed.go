// Package seed loads the baseline float dataset and the canned chat answers.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

//go:embed floats.yaml
var defaultFloats []byte

// Ensure Source implements the interface.
var _ driven.SeedSource = (*Source)(nil)

// Source reads a seed document of the form {argoFloats: [...]}. YAML and
// JSON files are both accepted.
type Source struct {
	path string
}

// NewSource returns a source for path. An empty path selects the embedded
// default dataset.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the seed file path, or "" for the embedded dataset.
func (s *Source) Path() string {
	return s.path
}

// Load parses and validates the seed floats.
func (s *Source) Load() ([]domain.Float, error) {
	data := defaultFloats
	name := "embedded seed"
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data, name = raw, s.path
	}
	floats, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return floats, nil
}

type seedDocument struct {
	ArgoFloats []domain.Float `yaml:"argoFloats"`
}

// Parse decodes a seed document. A float without a sea gets one derived
// from its location. Duplicate IDs and invalid coordinates are rejected.
func Parse(data []byte) ([]domain.Float, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	seen := make(map[string]struct{}, len(doc.ArgoFloats))
	for i := range doc.ArgoFloats {
		f := &doc.ArgoFloats[i]
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate float id %s", domain.ErrInvalidInput, f.ID)
		}
		seen[f.ID] = struct{}{}
		if f.Sea == "" {
			f.Sea = domain.SeaFromLocation(f.Location)
		}
	}
	return doc.ArgoFloats, nil
}
