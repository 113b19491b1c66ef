package rag

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/pkg/embedding"
	"github.com/kk7188048/Rag-NewsArticles/pkg/generation"
	"github.com/kk7188048/Rag-NewsArticles/pkg/ingest"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

// ErrNotInitialized is returned by ProcessQuery before Initialize has
// completed successfully.
var ErrNotInitialized = errors.New("rag pipeline not initialized")

const (
	// DefaultTopK is how many articles are retrieved per query.
	DefaultTopK = 5
	// embedBatchSize bounds how many texts go to the embedding provider
	// in one call during ingestion.
	embedBatchSize = 100
)

// ArticleLoader supplies the corpus on cold start.
type ArticleLoader interface {
	LoadArticles(ctx context.Context) []ingest.Article
}

// QueryProcessor is what the chat service depends on.
type QueryProcessor interface {
	Initialize(ctx context.Context) error
	ProcessQuery(ctx context.Context, query string) (*store.QueryResult, error)
	GetStats(ctx context.Context) store.Stats
}

// Pipeline wires ingestion, embedding, retrieval and generation into one
// query path. Safe for concurrent use after Initialize.
type Pipeline struct {
	embedder  *embedding.Gateway
	index     contract.ArticleIndexRepository
	generator *generation.Gateway
	loader    ArticleLoader
	topK      int
	logger    logger.ILogger

	// initMu serializes Initialize attempts only. Readiness is read
	// through the atomic so queries and health checks never queue behind
	// a cold-start ingest.
	initMu      sync.Mutex
	initialized atomic.Bool
}

func NewPipeline(
	embedder *embedding.Gateway,
	index contract.ArticleIndexRepository,
	generator *generation.Gateway,
	loader ArticleLoader,
	topK int,
	log logger.ILogger,
) *Pipeline {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Pipeline{
		embedder:  embedder,
		index:     index,
		generator: generator,
		loader:    loader,
		topK:      topK,
		logger:    log,
	}
}

// Initialize makes the pipeline ready to serve queries. When the index
// already holds articles the ingestion step is skipped, so restarts do
// not re-embed the corpus. Concurrent callers serialize on one attempt;
// a failed attempt leaves the pipeline uninitialized and retryable.
func (p *Pipeline) Initialize(ctx context.Context) error {
	p.initMu.Lock()
	defer p.initMu.Unlock()

	if p.initialized.Load() {
		return nil
	}

	count, err := p.index.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		p.logger.Info("RAG", "Index already populated, skipping ingestion", map[string]interface{}{
			"articles": count,
		})
		p.initialized.Store(true)
		return nil
	}

	if err := p.ingestAndIndex(ctx); err != nil {
		return err
	}
	p.initialized.Store(true)
	return nil
}

func (p *Pipeline) ingestAndIndex(ctx context.Context) error {
	articles := p.loader.LoadArticles(ctx)
	p.logger.Info("RAG", "Ingesting articles", map[string]interface{}{
		"articles": len(articles),
	})

	var errs []error
	for start := 0; start < len(articles); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(articles) {
			end = len(articles)
		}
		batch := articles[start:end]

		texts := make([]string, len(batch))
		for i, a := range batch {
			texts[i] = a.EmbeddingText()
		}

		// Embed never fails: on provider trouble it returns fallback
		// vectors tagged with their path so searches stay in-space.
		res := p.embedder.Embed(ctx, texts)

		indexed := make([]contract.IndexedArticle, len(batch))
		for i, a := range batch {
			indexed[i] = contract.IndexedArticle{
				Article:       a,
				Embedding:     res.Vectors[i],
				EmbeddingPath: res.Quality,
			}
		}
		if err := p.index.Upsert(ctx, indexed); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ProcessQuery runs one full retrieval-augmented turn. It returns
// ErrNotInitialized before Initialize; past that point it always
// produces an answer, degrading to the fallback response
// instead of failing.
func (p *Pipeline) ProcessQuery(ctx context.Context, query string) (*store.QueryResult, error) {
	if !p.initialized.Load() {
		return nil, ErrNotInitialized
	}

	res := p.embedder.Embed(ctx, []string{query})

	docs, err := p.index.SearchSimilar(ctx, res.Vectors[0], p.topK, res.Quality)
	if err != nil {
		// Retrieval trouble degrades to answering without context rather
		// than surfacing an error to the user.
		p.logger.Error("RAG", "Similarity search failed, answering without context", map[string]interface{}{
			"error": err.Error(),
		})
		docs = nil
	}

	answer := p.generator.Generate(ctx, query, docs)

	return &store.QueryResult{
		Query:          query,
		Response:       answer.Text,
		Sources:        answer.Sources,
		RetrievedCount: len(docs),
	}, nil
}

// GetStats reports the index size and readiness for health checks.
func (p *Pipeline) GetStats(ctx context.Context) store.Stats {
	count, err := p.index.Count(ctx)
	if err != nil {
		p.logger.Warn("RAG", "Failed to count indexed articles", map[string]interface{}{
			"error": err.Error(),
		})
		count = 0
	}
	return store.Stats{
		ArticleCount:  count,
		IsInitialized: p.initialized.Load(),
	}
}
