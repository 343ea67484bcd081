// Package genai wraps the external text-generation services used by the
// conversational agent. Two backends are supported: the Gemini REST API and
// AWS Bedrock. Both expose the same Generator interface: prompt in, text out.
package genai

import "context"

// Generator is the interface consumed by the classifier and strategies.
// GenerateStream uses the backend's streaming transport but buffers all
// fragments and returns the assembled text; exactly one response object is
// produced per request cycle, so nothing downstream consumes partial output.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string) (string, error)
}

// ModelInfo describes a generation model available to the configured credentials.
type ModelInfo struct {
	Name              string   `json:"name"`
	DisplayName       string   `json:"displayName"`
	Description       string   `json:"description,omitempty"`
	GenerationMethods []string `json:"supportedGenerationMethods,omitempty"`
}
