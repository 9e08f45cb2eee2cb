// Package expand turns one free-text goal into concrete task texts using a
// remote generation service, degrading to the goal itself on any failure.
package expand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/logging"
)

// PromptTemplate is the instruction sent with each goal.
const PromptTemplate = `Break down the following goal into 3-5 actionable, concise to-do list items: "%s". Return only the list of tasks.`

// ResponseSchema is the JSON schema every generation response must satisfy.
// Generators pass the same shape to the service as its structured-output contract.
const ResponseSchema = `{
  "type": "object",
  "properties": {
    "tasks": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["tasks"]
}`

var responseSchema = jsonschema.MustCompileString("tasks.schema.json", ResponseSchema)

// Request is a single generation request.
type Request struct {
	Model  string
	Prompt string
}

// Generator issues one request against the remote service and returns the raw
// response text. An empty string means the service returned no body.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Response is the structured body returned by the service.
type Response struct {
	Tasks []string `json:"tasks"`
}

// ErrEmptyResponse is reported when the service returns no body.
var ErrEmptyResponse = errors.New("no response from AI")

// Gateway wraps a Generator with the response contract and the fallback.
type Gateway struct {
	gen   Generator
	model string
	log   *log.Logger
}

// New creates a Gateway. A nil gen means no credential is configured:
// Expand then returns the goal unchanged without any network I/O.
func New(gen Generator, model string, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Gateway{gen: gen, model: model, log: logger}
}

// Enabled reports whether a generator is configured.
func (g *Gateway) Enabled() bool {
	return g.gen != nil
}

// Expand returns the task texts for goal. It makes at most one request and
// never fails: on a missing generator, a request error, an empty or unparsable
// body, or no usable tasks, it returns []string{goal}. Only the first three
// are logged.
func (g *Gateway) Expand(ctx context.Context, goal string) []string {
	fallback := []string{goal}

	if g.gen == nil {
		g.log.Warn("API key is missing, skipping AI generation")
		return fallback
	}

	g.log.Debug("requesting task expansion", "model", g.model)
	body, err := g.gen.Generate(ctx, Request{
		Model:  g.model,
		Prompt: fmt.Sprintf(PromptTemplate, goal),
	})
	if err != nil {
		g.log.Error("error generating subtasks", "err", err)
		return fallback
	}

	tasks, err := Parse(body)
	if err != nil {
		g.log.Error("error generating subtasks", "err", err)
		return fallback
	}
	if len(tasks) == 0 {
		return fallback
	}
	return tasks
}

// Parse returns the trimmed, non-blank task texts of a raw response body in
// order. An empty body or a JSON syntax error is an error. Well-formed JSON
// that does not satisfy ResponseSchema carries no usable tasks, so it returns
// an empty slice and no error, the same as a body with an empty list.
func Parse(body string) ([]string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyResponse
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if err := responseSchema.Validate(doc); err != nil {
		return []string{}, nil
	}

	var resp Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	tasks := make([]string, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		if t = strings.TrimSpace(t); t != "" {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}
