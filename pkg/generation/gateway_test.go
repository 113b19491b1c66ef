package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/pkg/llm"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, "")
}

func doc(title, source, link, body string) *store.RetrievedDocument {
	return &store.RetrievedDocument{
		Document: body,
		Metadata: store.DocumentMetadata{Title: title, Source: source, Link: link},
	}
}

func TestGenerateGroundsPromptInDocuments(t *testing.T) {
	provider := &fakeLLM{response: "The summit concluded with new targets."}
	g := NewGateway(provider, logger.NewNopLogger())

	docs := []*store.RetrievedDocument{
		doc("Climate Summit", "BBC News", "https://example.com/1", "Leaders met in Geneva."),
		doc("Chip Demand", "Wired", "https://example.com/2", "AI chips are scarce."),
	}
	answer := g.Generate(context.Background(), "what happened at the summit?", docs)

	if answer.Degraded {
		t.Fatal("answer should not be degraded")
	}
	if answer.Text != "The summit concluded with new targets." {
		t.Fatalf("unexpected text: %q", answer.Text)
	}
	if !strings.Contains(provider.prompt, "Source 1 (BBC News): Leaders met in Geneva.") {
		t.Fatalf("prompt missing first source block:\n%s", provider.prompt)
	}
	if !strings.Contains(provider.prompt, "what happened at the summit?") {
		t.Fatal("prompt missing user question")
	}
	if len(answer.Sources) != 2 {
		t.Fatalf("want 2 sources, got %d", len(answer.Sources))
	}
}

func TestGenerateFallbackOnProviderError(t *testing.T) {
	provider := &fakeLLM{err: errors.New("quota exceeded")}
	g := NewGateway(provider, logger.NewNopLogger())

	answer := g.Generate(context.Background(), "anything", []*store.RetrievedDocument{
		doc("A", "S", "https://example.com/a", "body"),
	})

	if !answer.Degraded {
		t.Fatal("answer should be degraded")
	}
	if answer.Text != FallbackAnswer {
		t.Fatalf("text = %q, want fallback answer", answer.Text)
	}
	if len(answer.Sources) != 0 {
		t.Fatalf("degraded answer must not cite sources, got %d", len(answer.Sources))
	}
}

func TestGenerateFallbackOnEmptyResponse(t *testing.T) {
	provider := &fakeLLM{response: "   \n"}
	g := NewGateway(provider, logger.NewNopLogger())

	answer := g.Generate(context.Background(), "anything", nil)
	if !answer.Degraded || answer.Text != FallbackAnswer {
		t.Fatalf("blank model output should degrade, got %+v", answer)
	}
}

func TestBuildContextBlockEmpty(t *testing.T) {
	if got := BuildContextBlock(nil); got != "(no relevant articles found)" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildSourcesDedup(t *testing.T) {
	docs := []*store.RetrievedDocument{
		doc("First", "BBC", "https://example.com/x", "chunk 1"),
		doc("Second", "CNN", "https://example.com/y", "other"),
		doc("First", "BBC", "https://example.com/x", "chunk 2"), // same article, second chunk
		doc("Untitled dup", "NPR", "", "a"),
		doc("Untitled dup", "NPR", "", "b"), // no link, dedup falls back to title
	}

	sources := BuildSources(docs)
	if len(sources) != 3 {
		t.Fatalf("want 3 deduplicated sources, got %d: %+v", len(sources), sources)
	}
	// Rank order preserved.
	if sources[0].Title != "First" || sources[1].Title != "Second" || sources[2].Title != "Untitled dup" {
		t.Fatalf("rank order lost: %+v", sources)
	}
}
