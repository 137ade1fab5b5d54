package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/reclasifica/internal/batch"
	"github.com/ppiankov/reclasifica/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name     string
	answers  map[string]string // first label -> answer
	err      error
	requests []SuggestRequest
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	label, err := MatchLabel(m.answers[req.Labels[0]], req.Labels)
	if err != nil {
		return nil, err
	}
	return &SuggestResponse{Label: label, Model: "mock-model"}, nil
}

func reviewItem(file string, labels ...string) batch.Item {
	rec := model.TransformedRecord{}
	rec.ProcedureType = labels[0]
	rec.Employment = model.Employment{Title: "JEFE DE DEPARTAMENTO", Unit: "SECRETARÍA"}
	rec.Review = &model.ReviewAnnotation{RequiresReview: true, DetectedLabels: labels}
	return batch.Item{File: file, Record: rec}
}

func TestNewAdvisor_Disabled(t *testing.T) {
	advisor, err := NewAdvisor(Config{Provider: ""}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if advisor.IsEnabled() {
		t.Error("Expected advisor to be disabled")
	}
	if advisor.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}

	_, _, err = advisor.Review(context.Background(), []batch.Item{reviewItem("a.json", "A", "B")})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
}

func TestNewAdvisor_UnknownProvider(t *testing.T) {
	if _, err := NewAdvisor(Config{Provider: "anthropic"}, nil); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestAdvisor_Review(t *testing.T) {
	provider := &MockProvider{
		name: "mock",
		answers: map[string]string{
			"CONCESIÓN": "venta",
			"A":         "C",
		},
	}
	advisor := NewAdvisorWithProvider(provider, Config{Model: "mock-model", MaxTokens: 20}, nil)

	items := []batch.Item{
		reviewItem("1_ANA_LOPEZ.json", "CONCESIÓN", "VENTA"),
		reviewItem("2_LUIS_DIAZ.json", "A", "B"),
	}

	suggestions, warnings, err := advisor.Review(context.Background(), items)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	want := []model.ReviewSuggestion{{
		File:           "1_ANA_LOPEZ.json",
		DetectedLabels: []string{"CONCESIÓN", "VENTA"},
		Suggestion:     "VENTA",
		Model:          "mock-model",
	}}
	if diff := cmp.Diff(want, suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}

	if len(warnings) != 1 || !strings.HasPrefix(warnings[0], "Sugerencia no disponible para 2_LUIS_DIAZ.json") {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	if len(provider.requests) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(provider.requests))
	}
	req := provider.requests[0]
	if req.Position != "JEFE DE DEPARTAMENTO" || req.Institution != "SECRETARÍA" || req.MaxTokens != 20 {
		t.Errorf("Unexpected request: %+v", req)
	}
}

func TestAdvisor_ReviewLeavesRecordsUntouched(t *testing.T) {
	provider := &MockProvider{name: "mock", answers: map[string]string{"A": "B"}}
	advisor := NewAdvisorWithProvider(provider, Config{}, nil)

	items := []batch.Item{reviewItem("x.json", "A", "B")}
	before := *items[0].Record.Review

	if _, _, err := advisor.Review(context.Background(), items); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, *items[0].Record.Review); diff != "" {
		t.Errorf("annotation changed (-before +after):\n%s", diff)
	}
	if items[0].Record.Classification != nil {
		t.Error("advisor must not classify records")
	}
}

func TestAdvisor_ReviewProviderError(t *testing.T) {
	provider := &MockProvider{name: "mock", err: errors.New("boom")}
	advisor := NewAdvisorWithProvider(provider, Config{}, nil)

	suggestions, warnings, err := advisor.Review(context.Background(), []batch.Item{
		reviewItem("a.json", "A", "B"),
		reviewItem("b.json", "C", "D"),
	})
	if err != nil {
		t.Fatalf("Provider errors must not fail the review: %v", err)
	}
	if len(suggestions) != 0 || len(warnings) != 2 {
		t.Errorf("Expected 0 suggestions and 2 warnings, got %d and %d", len(suggestions), len(warnings))
	}
}

func TestAdvisor_ReviewCancelled(t *testing.T) {
	provider := &MockProvider{name: "mock", answers: map[string]string{"A": "A"}}
	// one request per minute: the second item has to wait
	advisor := NewAdvisorWithProvider(provider, Config{RequestsPerSecond: 1.0 / 60, Burst: 1}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	suggestions, _, err := advisor.Review(ctx, []batch.Item{
		reviewItem("a.json", "A", "B"),
		reviewItem("b.json", "A", "B"),
	})
	if err == nil {
		t.Fatal("Expected rate limit error")
	}
	if len(suggestions) != 1 {
		t.Errorf("Expected the first suggestion to be kept, got %d", len(suggestions))
	}
}

func TestDetectedLabels_Fallback(t *testing.T) {
	rec := model.TransformedRecord{}
	rec.ProcedureType = "VENTA"
	if diff := cmp.Diff([]string{"VENTA"}, detectedLabels(rec)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if detectedLabels(model.TransformedRecord{}) != nil {
		t.Error("expected nil labels for empty record")
	}
}
