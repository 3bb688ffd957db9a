package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/config"
)

// ErrModelUnavailable wraps any failure of the generative endpoint. Callers
// are expected to degrade to a canned reply, never to surface this upward.
var ErrModelUnavailable = errors.New("language model unavailable")

// Service is the thin client for the generative endpoint.
type Service struct {
	llm    llms.Model
	cfg    config.AIConfig
	logger *zap.SugaredLogger
}

// NewService dials Gemini with the configured key and model.
func NewService(ctx context.Context, cfg config.AIConfig, logger *zap.SugaredLogger) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Service{llm: llm, cfg: cfg, logger: logger}, nil
}

// NewServiceWithModel injects a prebuilt model, used by tests and by any
// future provider swap.
func NewServiceWithModel(llm llms.Model, cfg config.AIConfig, logger *zap.SugaredLogger) *Service {
	return &Service{llm: llm, cfg: cfg, logger: logger}
}

// Generate runs one completion for the assembled prompt. Timeouts, rate
// limits and empty completions all come back as ErrModelUnavailable.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	var opts []llms.CallOption
	if s.cfg.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*s.cfg.Temperature))
	}

	reply, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, opts...)
	if err != nil {
		s.logger.Warnw("model call failed", "model", s.cfg.Model, "error", err)
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		s.logger.Warnw("model returned empty completion", "model", s.cfg.Model)
		return "", ErrModelUnavailable
	}

	s.logger.Debugw("generated reply", "model", s.cfg.Model, "length", len(reply))
	return reply, nil
}
