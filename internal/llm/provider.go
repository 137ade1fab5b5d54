package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrDisabled is returned when no LLM provider is configured
var ErrDisabled = errors.New("LLM review advisor disabled")

// ErrSuggestionLeak is returned when the model answers with a label that was
// not offered to it
var ErrSuggestionLeak = errors.New("SUGGESTION LEAK")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Suggest picks the most plausible procedure type among req.Labels
	Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)
}

// SuggestRequest contains the input for one review suggestion
type SuggestRequest struct {
	// Labels is the STRICT allowlist of procedure types the model may answer with
	Labels []string

	// Position and Institution give the model context about the declarant
	Position    string
	Institution string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SuggestResponse contains the model's pick
type SuggestResponse struct {
	// Label is one of SuggestRequest.Labels
	Label string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama's OpenAI-compatible API)
	BaseURL string

	// Proxy for outbound requests (empty uses HTTP_PROXY/HTTPS_PROXY)
	Proxy string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Request throttling
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		MaxTokens:         50,
		RequestsPerSecond: 2,
		Burst:             1,
	}
}

// BuildPrompt constructs the default prompt asking for one label of the allowlist
func BuildPrompt(req SuggestRequest) string {
	var b strings.Builder

	b.WriteString(`You are helping a reviewer sort a conflict-of-interest declaration that lists more than one procedure type.

CRITICAL RULES:
1. You MUST answer with EXACTLY ONE procedure type copied verbatim from this list:
`)
	for _, label := range req.Labels {
		fmt.Fprintf(&b, "- %s\n", label)
	}
	b.WriteString(`
2. DO NOT invent, translate, or combine procedure types.
3. Answer with the procedure type only, no explanation.

Declaration:
`)
	fmt.Fprintf(&b, "- Position: %s\n", orUnknown(req.Position))
	fmt.Fprintf(&b, "- Institution: %s\n", orUnknown(req.Institution))
	b.WriteString("\nWhich procedure type best describes the declarant's participation?")

	return b.String()
}

// MatchLabel maps a model answer onto the allowlist. Surrounding whitespace,
// quotes, list markers and a trailing period are ignored and the comparison
// is case-insensitive.
func MatchLabel(answer string, labels []string) (string, error) {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "- ")
	cleaned = strings.Trim(cleaned, "\"'`*. ")

	for _, label := range labels {
		if strings.EqualFold(cleaned, strings.TrimSpace(label)) {
			return label, nil
		}
	}
	return "", fmt.Errorf("%w: LLM answered with disallowed label: %q", ErrSuggestionLeak, answer)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(unknown)"
	}
	return s
}
