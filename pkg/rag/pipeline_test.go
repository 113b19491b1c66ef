package rag

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/pkg/embedding"
	"github.com/kk7188048/Rag-NewsArticles/pkg/generation"
	"github.com/kk7188048/Rag-NewsArticles/pkg/ingest"
	"github.com/kk7188048/Rag-NewsArticles/pkg/llm"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

type fakeIndex struct {
	count      int64
	countErr   error
	upserted   []contract.IndexedArticle
	upsertErr  error
	searchDocs []*store.RetrievedDocument
	searchErr  error
	searchPath string
	searchK    int
}

func (f *fakeIndex) Upsert(ctx context.Context, articles []contract.IndexedArticle) error {
	f.upserted = append(f.upserted, articles...)
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.count += int64(len(articles))
	return nil
}

func (f *fakeIndex) SearchSimilar(ctx context.Context, embedding []float32, limit int, embeddingPath string) ([]*store.RetrievedDocument, error) {
	f.searchPath = embeddingPath
	f.searchK = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	docs := f.searchDocs
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (f *fakeIndex) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

type fakeLoader struct {
	articles []ingest.Article
	calls    int
}

func (f *fakeLoader) LoadArticles(ctx context.Context) []ingest.Article {
	f.calls++
	return f.articles
}

type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		if i < len(s.vectors) {
			out[i] = s.vectors[i]
		} else {
			out[i] = []float32{1, 0}
		}
	}
	return out, nil
}

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func testArticles(n int) []ingest.Article {
	articles := make([]ingest.Article, n)
	for i := range articles {
		articles[i] = ingest.Article{
			ID:      ingest.ArticleID("", "https://example.com/"+string(rune('a'+i))),
			Title:   "Article",
			Content: "Enough body text to clear the validation threshold for an indexable article.",
			Link:    "https://example.com/" + string(rune('a'+i)),
		}
	}
	return articles
}

func newTestPipeline(index *fakeIndex, loader *fakeLoader, embedErr error, llmStub *stubLLM) *Pipeline {
	log := logger.NewNopLogger()
	gateway := embedding.NewGateway(&stubEmbedder{err: embedErr}, 2, log)
	gen := generation.NewGateway(llmStub, log)
	return NewPipeline(gateway, index, gen, loader, 2, log)
}

func TestProcessQueryBeforeInitialize(t *testing.T) {
	p := newTestPipeline(&fakeIndex{}, &fakeLoader{}, nil, &stubLLM{response: "ok"})

	_, err := p.ProcessQuery(context.Background(), "hello")
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
}

func TestInitializeIngestsOnEmptyIndex(t *testing.T) {
	index := &fakeIndex{}
	loader := &fakeLoader{articles: testArticles(3)}
	p := newTestPipeline(index, loader, nil, &stubLLM{response: "ok"})

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("loader called %d times, want 1", loader.calls)
	}
	if len(index.upserted) != 3 {
		t.Fatalf("upserted %d articles, want 3", len(index.upserted))
	}
	for _, a := range index.upserted {
		if a.EmbeddingPath != embedding.QualityProvider {
			t.Fatalf("embedding path = %q, want provider", a.EmbeddingPath)
		}
	}
}

func TestInitializeSkipsIngestWhenPopulated(t *testing.T) {
	index := &fakeIndex{count: 42}
	loader := &fakeLoader{articles: testArticles(3)}
	p := newTestPipeline(index, loader, nil, &stubLLM{response: "ok"})

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if loader.calls != 0 {
		t.Fatal("populated index must not trigger re-ingestion")
	}

	// Second call is a no-op either way.
	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("re-Initialize: %v", err)
	}
}

func TestInitializeRetryableAfterFailure(t *testing.T) {
	index := &fakeIndex{countErr: errors.New("db down")}
	loader := &fakeLoader{articles: testArticles(1)}
	p := newTestPipeline(index, loader, nil, &stubLLM{response: "ok"})

	if err := p.Initialize(context.Background()); err == nil {
		t.Fatal("want error while db is down")
	}
	if _, err := p.ProcessQuery(context.Background(), "q"); !errors.Is(err, ErrNotInitialized) {
		t.Fatal("failed init must leave pipeline uninitialized")
	}

	index.countErr = nil
	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("retry Initialize: %v", err)
	}
	if _, err := p.ProcessQuery(context.Background(), "q"); err != nil {
		t.Fatalf("ProcessQuery after recovery: %v", err)
	}
}

func TestProcessQueryReturnsRankedSources(t *testing.T) {
	index := &fakeIndex{
		count: 3,
		searchDocs: []*store.RetrievedDocument{
			{Document: "top hit", Metadata: store.DocumentMetadata{Title: "Top", Source: "BBC", Link: "https://example.com/1"}, Similarity: 0.9, Distance: 0.1},
			{Document: "second", Metadata: store.DocumentMetadata{Title: "Second", Source: "CNN", Link: "https://example.com/2"}, Similarity: 0.6, Distance: 0.4},
			{Document: "third", Metadata: store.DocumentMetadata{Title: "Third", Source: "NPR", Link: "https://example.com/3"}, Similarity: 0.2, Distance: 0.8},
		},
	}
	p := newTestPipeline(index, &fakeLoader{}, nil, &stubLLM{response: "an answer"})

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	result, err := p.ProcessQuery(context.Background(), "what happened?")
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}

	if index.searchK != 2 {
		t.Fatalf("topK = %d, want 2", index.searchK)
	}
	if index.searchPath != embedding.QualityProvider {
		t.Fatalf("search path = %q, want provider", index.searchPath)
	}
	if result.RetrievedCount != 2 {
		t.Fatalf("retrieved count = %d, want 2", result.RetrievedCount)
	}
	if len(result.Sources) != 2 || result.Sources[0].Title != "Top" || result.Sources[1].Title != "Second" {
		t.Fatalf("sources wrong or out of rank order: %+v", result.Sources)
	}
	if result.Response != "an answer" || result.Query != "what happened?" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestProcessQueryUsesFallbackPathWhenEmbedderDown(t *testing.T) {
	index := &fakeIndex{count: 1}
	p := newTestPipeline(index, &fakeLoader{}, errors.New("embed api down"), &stubLLM{response: "still answers"})

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	result, err := p.ProcessQuery(context.Background(), "q")
	if err != nil {
		t.Fatalf("ProcessQuery must absorb embedder failure: %v", err)
	}
	if index.searchPath != embedding.QualityFallback {
		t.Fatalf("search path = %q, want fallback so spaces never mix", index.searchPath)
	}
	if result.Response != "still answers" {
		t.Fatalf("response = %q", result.Response)
	}
}

func TestProcessQueryDegradesOnSearchFailure(t *testing.T) {
	index := &fakeIndex{count: 1, searchErr: errors.New("pg down")}
	p := newTestPipeline(index, &fakeLoader{}, nil, &stubLLM{response: "contextless answer"})

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	result, err := p.ProcessQuery(context.Background(), "q")
	if err != nil {
		t.Fatalf("ProcessQuery must absorb search failure: %v", err)
	}
	if result.RetrievedCount != 0 || len(result.Sources) != 0 {
		t.Fatalf("search failure should mean zero retrievals, got %+v", result)
	}
}

func TestProcessQueryDegradesOnGeneratorFailure(t *testing.T) {
	index := &fakeIndex{count: 1, searchDocs: []*store.RetrievedDocument{
		{Document: "doc", Metadata: store.DocumentMetadata{Title: "T", Source: "S", Link: "https://example.com/t"}},
	}}
	p := newTestPipeline(index, &fakeLoader{}, nil, &stubLLM{err: errors.New("llm down")})

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	result, err := p.ProcessQuery(context.Background(), "q")
	if err != nil {
		t.Fatalf("ProcessQuery must absorb generation failure: %v", err)
	}
	if result.Response != generation.FallbackAnswer {
		t.Fatalf("response = %q, want fallback answer", result.Response)
	}
	if len(result.Sources) != 0 {
		t.Fatal("degraded answer must not cite sources")
	}
	if result.RetrievedCount != 1 {
		t.Fatalf("retrieved count = %d, want 1 (retrieval itself succeeded)", result.RetrievedCount)
	}
}

type blockingLoader struct {
	release chan struct{}
}

func (b *blockingLoader) LoadArticles(ctx context.Context) []ingest.Article {
	<-b.release
	return nil
}

func TestReadsNotBlockedByColdStartIngest(t *testing.T) {
	index := &fakeIndex{}
	loader := &blockingLoader{release: make(chan struct{})}
	log := logger.NewNopLogger()
	gateway := embedding.NewGateway(&stubEmbedder{}, 2, log)
	gen := generation.NewGateway(&stubLLM{response: "ok"}, log)
	p := NewPipeline(gateway, index, gen, loader, 2, log)

	initDone := make(chan error, 1)
	go func() { initDone <- p.Initialize(context.Background()) }()

	// While ingestion is stuck in the loader, health checks and queries
	// must come back immediately with "not ready" answers.
	type reads struct {
		stats store.Stats
		err   error
	}
	got := make(chan reads, 1)
	go func() {
		stats := p.GetStats(context.Background())
		_, err := p.ProcessQuery(context.Background(), "q")
		got <- reads{stats: stats, err: err}
	}()

	select {
	case r := <-got:
		if r.stats.IsInitialized {
			t.Fatal("stats report initialized during cold start")
		}
		if !errors.Is(r.err, ErrNotInitialized) {
			t.Fatalf("ProcessQuery err = %v, want ErrNotInitialized", r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reads blocked behind cold-start ingestion")
	}

	close(loader.release)
	if err := <-initDone; err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !p.GetStats(context.Background()).IsInitialized {
		t.Fatal("pipeline not initialized after ingest finished")
	}
}

func TestGetStats(t *testing.T) {
	index := &fakeIndex{count: 7}
	p := newTestPipeline(index, &fakeLoader{}, nil, &stubLLM{response: "ok"})

	stats := p.GetStats(context.Background())
	if stats.IsInitialized || stats.ArticleCount != 7 {
		t.Fatalf("pre-init stats = %+v", stats)
	}

	if err := p.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	stats = p.GetStats(context.Background())
	if !stats.IsInitialized || stats.ArticleCount != 7 {
		t.Fatalf("post-init stats = %+v", stats)
	}
}
