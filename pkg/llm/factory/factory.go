package factory

import (
	"fmt"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/pkg/llm"
	"github.com/kk7188048/Rag-NewsArticles/pkg/llm/gemini"
	"github.com/kk7188048/Rag-NewsArticles/pkg/llm/ollama"
)

// NewLLMProvider builds the configured backend. Unknown provider names
// are a startup error, not a silent default.
func NewLLMProvider(providerType, modelName, baseURL, geminiApiKey string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName, timeout), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
