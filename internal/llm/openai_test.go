package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "- CONCESIÓN\n") {
			t.Errorf("Expected prompt listing the labels, got %+v", req.Messages)
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  req.Model,
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: content,
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 42},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIProvider_Suggest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: " venta.\n"}},
			},
			Usage: openai.Usage{TotalTokens: 12},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Suggest(context.Background(), SuggestRequest{Labels: []string{"CONCESIÓN", "VENTA"}})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if resp.Label != "VENTA" {
		t.Errorf("Expected label VENTA, got %q", resp.Label)
	}
	if resp.Model != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", resp.Model)
	}
	if resp.TokensUsed != 12 {
		t.Errorf("Expected 12 tokens, got %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_Suggest_Leak(t *testing.T) {
	server := chatServer(t, "LICITACIÓN PÚBLICA")
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Suggest(context.Background(), SuggestRequest{Labels: []string{"CONCESIÓN", "VENTA"}})
	if !errors.Is(err, ErrSuggestionLeak) {
		t.Fatalf("Expected ErrSuggestionLeak, got %v", err)
	}
}

func TestOpenAIProvider_Suggest_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Suggest(context.Background(), SuggestRequest{Labels: []string{"A", "B"}})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIProvider_Suggest_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Suggest(context.Background(), SuggestRequest{Labels: []string{"A", "B"}})
	if err == nil {
		t.Fatal("Expected error for malformed JSON, got nil")
	}
}

func TestOpenAIProvider_Suggest_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Suggest(context.Background(), SuggestRequest{Labels: []string{"A", "B"}})
	if err == nil || !strings.Contains(err.Error(), "no response") {
		t.Fatalf("Expected no response error, got %v", err)
	}
}

func TestOpenAIProvider_Suggest_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = provider.Suggest(ctx, SuggestRequest{Labels: []string{"A", "B"}})
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("Expected caller deadline to be honoured, took %v", time.Since(start))
	}
}

func TestOpenAIProvider_Suggest_NoLabels(t *testing.T) {
	provider, err := NewOpenAIProvider(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := provider.Suggest(context.Background(), SuggestRequest{}); err == nil {
		t.Error("Expected error without labels")
	}
}

func TestNewOpenAIProvider_MissingKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestNewOllamaProvider_Defaults(t *testing.T) {
	provider, err := NewOllamaProvider(Config{})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("Expected name ollama, got %s", provider.Name())
	}
	if provider.config.BaseURL != DefaultOllamaBaseURL {
		t.Errorf("Expected default base URL, got %s", provider.config.BaseURL)
	}
}

func TestNewOllamaProvider_Suggest(t *testing.T) {
	server := chatServer(t, "CONCESIÓN")
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Suggest(context.Background(), SuggestRequest{Labels: []string{"CONCESIÓN", "VENTA"}})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if resp.Label != "CONCESIÓN" || resp.Model != "llama3" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}
