package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/evaldesk/evaldesk/internal/config"
	"github.com/evaldesk/evaldesk/internal/metrics"
	"github.com/evaldesk/evaldesk/pkg/logger"
	"github.com/evaldesk/evaldesk/pkg/retry"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// maxEmbeddingBytes caps the text sent to the embedding endpoint.
const maxEmbeddingBytes = 10000

type GeminiService struct {
	client         *genai.Client
	model          string
	embeddingModel string
	requestTimeout time.Duration
	retryConfig    retry.Config
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	llmConfig := config.LoadLLMConfig()
	if llmConfig.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  llmConfig.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	retryConfig := retry.DefaultConfig()
	retryConfig.InitialDelay = time.Second
	retryConfig.MaxDelay = 30 * time.Second
	retryConfig.Logger = logger.Log

	return &GeminiService{
		client:         client,
		model:          llmConfig.Model,
		embeddingModel: llmConfig.EmbeddingModel,
		requestTimeout: 90 * time.Second,
		retryConfig:    retryConfig,
	}, nil
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) GradeDocument(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	text, err := retry.DoWithResult(timeoutCtx, s.retryConfig, func() (string, error) {
		result, err := s.client.Models.GenerateContent(timeoutCtx, s.model, genai.Text(prompt), genConfig)
		if err != nil {
			if !isRetryableLLMError(err) {
				return "", retry.Permanent(fmt.Errorf("generate content failed: %w", err))
			}
			return "", err
		}
		out := result.Text()
		if strings.TrimSpace(out) == "" {
			return "", fmt.Errorf("empty response from model")
		}
		return out, nil
	})
	if err != nil {
		metrics.LLMRequests.WithLabelValues(s.Name(), "error").Inc()
		return "", err
	}
	metrics.LLMRequests.WithLabelValues(s.Name(), "ok").Inc()
	return text, nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if len(trimmed) > maxEmbeddingBytes {
		logger.Warn("embedding input truncated", zap.Int("length", len(trimmed)))
		trimmed = truncateOnRuneBoundary(trimmed, maxEmbeddingBytes)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	return retry.DoWithResult(timeoutCtx, s.retryConfig, func() ([]float32, error) {
		result, err := s.client.Models.EmbedContent(timeoutCtx, s.embeddingModel,
			genai.Text(trimmed), nil)
		if err != nil {
			if !isRetryableLLMError(err) {
				return nil, retry.Permanent(fmt.Errorf("embed content failed: %w", err))
			}
			return nil, fmt.Errorf("embed content failed: %w", err)
		}
		if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
			return nil, fmt.Errorf("empty embedding response")
		}
		return result.Embeddings[0].Values, nil
	})
}

// isRetryableLLMError treats quota and transient server conditions as
// retryable; everything else is wrapped in retry.Permanent and fails
// fast.
func isRetryableLLMError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "quota", "500", "502", "503", "504", "deadline exceeded", "connection reset", "unavailable"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// truncateOnRuneBoundary shortens s to at most max bytes without
// splitting a multi-byte rune.
func truncateOnRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
