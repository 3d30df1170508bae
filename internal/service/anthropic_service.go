package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/evaldesk/evaldesk/internal/config"
	"github.com/evaldesk/evaldesk/internal/metrics"
	"github.com/evaldesk/evaldesk/pkg/logger"
	"github.com/evaldesk/evaldesk/pkg/retry"
)

const anthropicMaxTokens = 4096

type AnthropicService struct {
	client         anthropic.Client
	model          string
	requestTimeout time.Duration
	retryConfig    retry.Config
}

func NewAnthropicService() (*AnthropicService, error) {
	llmConfig := config.LoadLLMConfig()
	if llmConfig.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	retryConfig := retry.DefaultConfig()
	retryConfig.InitialDelay = time.Second
	retryConfig.MaxDelay = 30 * time.Second
	retryConfig.Logger = logger.Log

	return &AnthropicService{
		client:         anthropic.NewClient(option.WithAPIKey(llmConfig.AnthropicAPIKey)),
		model:          llmConfig.Model,
		requestTimeout: 90 * time.Second,
		retryConfig:    retryConfig,
	}, nil
}

func (s *AnthropicService) Name() string {
	return "anthropic"
}

func (s *AnthropicService) GradeDocument(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	text, err := retry.DoWithResult(timeoutCtx, s.retryConfig, func() (string, error) {
		message, err := s.client.Messages.New(timeoutCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(s.model),
			MaxTokens: anthropicMaxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			if !isRetryableLLMError(err) {
				return "", retry.Permanent(fmt.Errorf("anthropic message failed: %w", err))
			}
			return "", fmt.Errorf("anthropic message failed: %w", err)
		}

		var out strings.Builder
		for _, block := range message.Content {
			if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
				out.WriteString(textBlock.Text)
			}
		}
		if strings.TrimSpace(out.String()) == "" {
			return "", fmt.Errorf("empty response from model")
		}
		return out.String(), nil
	})
	if err != nil {
		metrics.LLMRequests.WithLabelValues(s.Name(), "error").Inc()
		return "", err
	}
	metrics.LLMRequests.WithLabelValues(s.Name(), "ok").Inc()
	return text, nil
}
