package llm

import (
	"context"
	"encoding/json"
)

// Provider is the narrow boundary to a language model. The scoring and
// coaching oracles are built on top of it; nothing else in the core
// touches a model SDK directly.
type Provider interface {
	// Generate sends a prompt to the model and returns its output.
	// When the request carries a Schema, the response Content is JSON
	// validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes one model call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. SkillBridge is single-turn: one
	// user message per request.
	Messages []Message

	// Schema, when set, instructs the provider to return JSON
	// conforming to it via the provider's structured-output mechanism.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness in 0.0-1.0; zero means
	// deterministic where the provider supports it.
	Temperature float64
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

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema; kebab-case, e.g. "answer-scores".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the generated output; validated JSON when the request
	// carried a Schema, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
