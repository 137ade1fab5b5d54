package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/reclasifica/internal/batch"
	"github.com/ppiankov/reclasifica/internal/model"
	"go.uber.org/zap"
)

// Advisor suggests a single procedure type for records sent to review. It
// only produces suggestions and never alters records or counters.
type Advisor struct {
	provider Provider
	limiter  *Limiter
	config   Config
	logger   *zap.Logger
}

// NewAdvisor creates an advisor from config. A disabled provider yields an
// advisor whose IsEnabled reports false.
func NewAdvisor(config Config, logger *zap.Logger) (*Advisor, error) {
	provider, err := NewProvider(config)
	if err != nil && !errors.Is(err, ErrDisabled) {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return NewAdvisorWithProvider(provider, config, logger), nil
}

// NewAdvisorWithProvider creates an advisor around an existing provider
func NewAdvisorWithProvider(provider Provider, config Config, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{
		provider: provider,
		limiter:  NewLimiter(config.RequestsPerSecond, config.Burst),
		config:   config,
		logger:   logger,
	}
}

// IsEnabled returns true if a provider is configured
func (a *Advisor) IsEnabled() bool {
	return a.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (a *Advisor) ProviderName() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.Name()
}

// Review asks for one suggestion per item, sequentially. Items that fail are
// reported as warnings and left out of the suggestions.
func (a *Advisor) Review(ctx context.Context, items []batch.Item) ([]model.ReviewSuggestion, []string, error) {
	if a.provider == nil {
		return nil, nil, ErrDisabled
	}

	suggestions := []model.ReviewSuggestion{}
	var warnings []string

	for _, item := range items {
		if err := a.limiter.Wait(ctx, a.provider.Name()); err != nil {
			return suggestions, warnings, fmt.Errorf("rate limit wait: %w", err)
		}

		labels := detectedLabels(item.Record)
		resp, err := a.provider.Suggest(ctx, SuggestRequest{
			Labels:      labels,
			Position:    item.Record.Employment.Title,
			Institution: item.Record.Employment.Unit,
			Model:       a.config.Model,
			MaxTokens:   a.config.MaxTokens,
		})
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Sugerencia no disponible para %s: %v", item.File, err))
			a.logger.Warn("Review suggestion failed", zap.String("file", item.File), zap.Error(err))
			continue
		}

		suggestions = append(suggestions, model.ReviewSuggestion{
			File:           item.File,
			DetectedLabels: labels,
			Suggestion:     resp.Label,
			Model:          resp.Model,
		})
		a.logger.Debug("Review suggestion",
			zap.String("file", item.File),
			zap.String("suggestion", resp.Label),
			zap.Int("tokens", resp.TokensUsed))
	}

	return suggestions, warnings, nil
}

func detectedLabels(rec model.TransformedRecord) []string {
	if rec.Review != nil && len(rec.Review.DetectedLabels) > 0 {
		return rec.Review.DetectedLabels
	}
	if rec.ProcedureType != "" {
		return []string{rec.ProcedureType}
	}
	return nil
}
