package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible
// chat completion APIs
type OpenAIProvider struct {
	name   string
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newChatProvider("openai", config)
}

// NewOllamaProvider creates a provider for a local Ollama server through its
// OpenAI-compatible endpoint
func NewOllamaProvider(config Config) (*OpenAIProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultOllamaBaseURL
	}
	if config.APIKey == "" {
		// Ollama ignores the key but the client always sends one
		config.APIKey = "ollama"
	}
	return newChatProvider("ollama", config)
}

func newChatProvider(name string, config Config) (*OpenAIProvider, error) {
	httpClient, err := newHTTPClient(config)
	if err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.HTTPClient = httpClient
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Suggest asks the model to choose one label from req.Labels
func (p *OpenAIProvider) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	if len(req.Labels) == 0 {
		return nil, fmt.Errorf("no labels to choose from")
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req)
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 50
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You classify Mexican public-sector procedure types. You only ever answer with one item of the list you are given.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", p.name)
	}

	// CRITICAL: the answer must be one of the offered labels
	label, err := MatchLabel(strings.TrimSpace(resp.Choices[0].Message.Content), req.Labels)
	if err != nil {
		return nil, err
	}

	return &SuggestResponse{
		Label:      label,
		Model:      model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
