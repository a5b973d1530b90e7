package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

//go:embed canned.yaml
var defaultCanned []byte

// Ensure Canned implements the interface.
var _ driven.CannedAnswers = (*Canned)(nil)

// Canned is an immutable set of prepared question and answer pairs.
type Canned struct {
	questions []string
	answers   map[string]string
}

type cannedDocument struct {
	Responses []struct {
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"responses"`
}

// DefaultCanned returns the embedded canned answers.
func DefaultCanned() (*Canned, error) {
	return ParseCanned(defaultCanned)
}

// ParseCanned decodes a {responses: [{question, answer}]} document.
func ParseCanned(data []byte) (*Canned, error) {
	var doc cannedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse canned answers: %w", err)
	}
	c := &Canned{answers: make(map[string]string, len(doc.Responses))}
	for i, r := range doc.Responses {
		key := normalise(r.Question)
		if key == "" || strings.TrimSpace(r.Answer) == "" {
			return nil, fmt.Errorf("canned answer %d: question and answer are required", i)
		}
		if _, dup := c.answers[key]; dup {
			return nil, fmt.Errorf("canned answer %d: duplicate question %q", i, r.Question)
		}
		c.answers[key] = r.Answer
		c.questions = append(c.questions, strings.TrimSpace(r.Question))
	}
	return c, nil
}

// Lookup returns the answer for an exact, case-insensitive question match.
func (c *Canned) Lookup(question string) (string, bool) {
	answer, ok := c.answers[normalise(question)]
	return answer, ok
}

// Questions returns every question in file order.
func (c *Canned) Questions() []string {
	out := make([]string, len(c.questions))
	copy(out, c.questions)
	return out
}

func normalise(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
