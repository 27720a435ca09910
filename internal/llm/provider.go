// Package llm is a small provider-neutral client for structured JSON
// generation. The coach uses it to explain near-miss answers.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a Request.
type Provider interface {
	// Generate sends the request and returns the model's output. When
	// req.Schema is set the output has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider identifier ("anthropic", "openai", ...).
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the output to JSON matching the definition. When
	// nil the response Content is the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// UserRequest builds a single-turn request.
func UserRequest(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name is kebab-case and doubles as the
// tool or schema name on providers that require one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is always "end"; truncated output is ErrMaxTokensExceeded.
	StopReason string
}

// Decode unmarshals the response content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
