package config

import (
	"os"
	"sync"
)

type LLMConfig struct {
	Provider        string // "gemini" or "anthropic"
	GeminiAPIKey    string
	AnthropicAPIKey string
	Model           string
	EmbeddingModel  string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		model := os.Getenv("LLM_MODEL")
		if model == "" {
			switch provider {
			case "anthropic":
				model = "claude-sonnet-4-20250514"
			default:
				model = "gemini-2.5-flash"
			}
		}
		embeddingModel := os.Getenv("LLM_EMBEDDING_MODEL")
		if embeddingModel == "" {
			embeddingModel = "gemini-embedding-001"
		}
		llmConfig = &LLMConfig{
			Provider:        provider,
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:           model,
			EmbeddingModel:  embeddingModel,
		}
	})
	return llmConfig
}
