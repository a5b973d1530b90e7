package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Output is a flow result that can check its own schema.
type Output interface {
	Validate() error
}

// Flow is a single prompt-templated model call with a typed input and a
// schema-checked output. A Flow holds no per-call state and may be used
// concurrently.
type Flow[In any, Out Output] struct {
	name    domain.FlowName
	prompt  string
	llm     driven.LLMService
	prompts driven.PromptStore
	opts    driven.GenerateOptions

	// validate checks the input before any model call.
	validate func(In) error

	// data builds the template data; nil executes the template on the input.
	data func(In) any

	// messages, when set, switches the flow to a chat call: the rendered
	// template becomes the system message followed by these messages.
	messages func(In) []driven.ChatMessage
}

// FlowOption configures a Flow.
type FlowOption[In any, Out Output] func(*Flow[In, Out])

// WithInputValidation rejects inputs before the model is called.
func WithInputValidation[In any, Out Output](fn func(In) error) FlowOption[In, Out] {
	return func(f *Flow[In, Out]) { f.validate = fn }
}

// WithTemplateData replaces the template data derived from the input.
func WithTemplateData[In any, Out Output](fn func(In) any) FlowOption[In, Out] {
	return func(f *Flow[In, Out]) { f.data = fn }
}

// WithChatMessages sends the rendered prompt as a system message followed
// by the messages fn returns.
func WithChatMessages[In any, Out Output](fn func(In) []driven.ChatMessage) FlowOption[In, Out] {
	return func(f *Flow[In, Out]) { f.messages = fn }
}

// WithGenerateOptions sets the generation options. The JSON schema is
// always derived from the output type when not set.
func WithGenerateOptions[In any, Out Output](opts driven.GenerateOptions) FlowOption[In, Out] {
	return func(f *Flow[In, Out]) {
		schema := f.opts.JSONSchema
		f.opts = opts
		if f.opts.JSONSchema == nil {
			f.opts.JSONSchema = schema
		}
	}
}

// NewFlow creates a flow that renders prompt from prompts and asks llm for
// JSON matching schema. A nil llm makes every run fail with
// domain.ErrLLMUnavailable.
func NewFlow[In any, Out Output](
	name domain.FlowName,
	prompt string,
	llm driven.LLMService,
	prompts driven.PromptStore,
	schema map[string]any,
	options ...FlowOption[In, Out],
) *Flow[In, Out] {
	f := &Flow[In, Out]{
		name:    name,
		prompt:  prompt,
		llm:     llm,
		prompts: prompts,
		opts:    driven.GenerateOptions{Temperature: 0.4, JSONSchema: schema},
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Name returns the flow name.
func (f *Flow[In, Out]) Name() domain.FlowName {
	return f.name
}

// Run validates in, renders the prompt, calls the model and decodes the
// answer. It returns either a schema-valid output or an error wrapping one
// of domain.ErrInvalidInput, domain.ErrLLMUnavailable,
// domain.ErrUpstreamModel, domain.ErrRateLimited or
// domain.ErrModelOutputInvalid.
func (f *Flow[In, Out]) Run(ctx context.Context, in In) (*Out, error) {
	logger.Section("Flow " + string(f.name))

	if f.validate != nil {
		if err := f.validate(in); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if f.llm == nil {
		return nil, fmt.Errorf("%s: %w", f.name, domain.ErrLLMUnavailable)
	}

	prompt, err := f.render(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	logger.Debug("Prompt %q rendered (%d bytes)", f.prompt, len(prompt))

	start := time.Now()
	raw, err := f.call(ctx, prompt, in)
	logger.Debug("Model %s answered in %s", f.llm.ModelName(), time.Since(start).Round(time.Millisecond))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, classifyModelError(err))
	}

	out, err := decodeOutput[Out](raw)
	if err != nil {
		logger.Warn("Flow %s: discarding model output: %v", f.name, err)
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return out, nil
}

func (f *Flow[In, Out]) render(in In) (string, error) {
	text, err := f.prompts.Load(f.prompt)
	if err != nil {
		return "", fmt.Errorf("load prompt %q: %w", f.prompt, err)
	}
	tmpl, err := template.New(f.prompt).
		Option("missingkey=error").
		Funcs(promptFuncs).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %q: %w", f.prompt, err)
	}

	var data any = in
	if f.data != nil {
		data = f.data(in)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", f.prompt, err)
	}
	return sb.String(), nil
}

func (f *Flow[In, Out]) call(ctx context.Context, prompt string, in In) (string, error) {
	if f.messages == nil {
		return f.llm.Generate(ctx, prompt, f.opts)
	}
	msgs := append([]driven.ChatMessage{{Role: driven.RoleSystem, Content: prompt}}, f.messages(in)...)
	return f.llm.Chat(ctx, msgs, driven.ChatOptions{
		MaxTokens:   f.opts.MaxTokens,
		Temperature: f.opts.Temperature,
		JSONSchema:  f.opts.JSONSchema,
	})
}

// promptFuncs are available to every prompt template.
var promptFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

// classifyModelError keeps known model sentinels and files everything
// else under domain.ErrUpstreamModel.
func classifyModelError(err error) error {
	switch {
	case errors.Is(err, domain.ErrRateLimited),
		errors.Is(err, domain.ErrUpstreamModel),
		errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrUpstreamModel, err)
	}
}

// decodeOutput strictly decodes a model answer into Out. Unknown fields,
// trailing data and schema violations are all rejected.
func decodeOutput[Out Output](raw string) (*Out, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty answer", domain.ErrModelOutputInvalid)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	var out Out
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelOutputInvalid, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", domain.ErrModelOutputInvalid)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelOutputInvalid, err)
	}
	return &out, nil
}

// stripCodeFence removes a surrounding Markdown code fence such as
// ```json ... ``` from a model answer.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
