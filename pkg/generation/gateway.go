package generation

import (
	"context"
	"strings"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/pkg/llm"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

// FallbackAnswer is returned whenever the model provider fails. A chat
// turn always receives some response.
const FallbackAnswer = "I apologize, but I'm having trouble generating a response right now. Please try again later."

// Answer is the outcome of one generation call. Sources are built from
// the retrieved documents' own metadata, never parsed out of the model
// text, so citations can't be hallucinated.
type Answer struct {
	Text     string
	Sources  []store.SourceRef
	Degraded bool
}

// Gateway composes an answer from a question and ranked documents.
// Provider failures are swallowed here and flagged as Degraded.
type Gateway struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGateway(provider llm.LLMProvider, log logger.ILogger) *Gateway {
	return &Gateway{provider: provider, logger: log}
}

func (g *Gateway) Generate(ctx context.Context, query string, docs []*store.RetrievedDocument) Answer {
	prompt := BuildAnswerPrompt(query, docs)

	text, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		g.logger.Error("GENERATION", "Provider failed, returning fallback answer", map[string]interface{}{
			"error": err.Error(),
		})
		return Answer{Text: FallbackAnswer, Sources: []store.SourceRef{}, Degraded: true}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		g.logger.Warn("GENERATION", "Provider returned empty text, returning fallback answer", nil)
		return Answer{Text: FallbackAnswer, Sources: []store.SourceRef{}, Degraded: true}
	}

	return Answer{Text: text, Sources: BuildSources(docs), Degraded: false}
}

// BuildSources maps retrieved documents to attributions, deduplicated by
// source document and preserving retrieval rank order.
func BuildSources(docs []*store.RetrievedDocument) []store.SourceRef {
	sources := make([]store.SourceRef, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		key := doc.Metadata.Link
		if key == "" {
			key = doc.Metadata.Title
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		sources = append(sources, store.SourceRef{
			Title:  doc.Metadata.Title,
			Source: doc.Metadata.Source,
			Link:   doc.Metadata.Link,
		})
	}
	return sources
}
