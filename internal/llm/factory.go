package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/reclasifica/internal/model"
)

// DefaultOllamaBaseURL is the OpenAI-compatible endpoint of a local Ollama server
const DefaultOllamaBaseURL = "http://localhost:11434/v1"

// NewProvider creates a new LLM provider based on configuration. An empty
// provider name returns ErrDisabled.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, ErrDisabled

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config. Missing keys fall
// back to OPENAI_API_KEY and OLLAMA_BASE_URL.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	config := Config{
		Provider:          modelConfig.Provider,
		Model:             modelConfig.Model,
		APIKey:            modelConfig.APIKey,
		BaseURL:           modelConfig.BaseURL,
		Proxy:             modelConfig.Proxy,
		Timeout:           modelConfig.Timeout,
		MaxTokens:         modelConfig.MaxTokens,
		RequestsPerSecond: modelConfig.RequestsPerSecond,
		Burst:             modelConfig.Burst,
	}

	switch strings.ToLower(config.Provider) {
	case "openai":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "ollama":
		if config.BaseURL == "" {
			config.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}

	return config
}
