package contract

import (
	"context"

	"github.com/kk7188048/Rag-NewsArticles/pkg/ingest"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

// IndexedArticle pairs an article with the vector that represents it and
// the path that produced the vector ("provider" or "fallback"). Searches
// only ever compare vectors produced by the same path.
type IndexedArticle struct {
	Article       ingest.Article
	Embedding     []float32
	EmbeddingPath string
}

type ArticleIndexRepository interface {
	// Upsert writes articles in batches, replacing rows with the same id.
	// A failed batch does not stop the remaining batches.
	Upsert(ctx context.Context, articles []IndexedArticle) error
	// SearchSimilar returns the closest articles by cosine distance,
	// restricted to rows embedded by the given path.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, embeddingPath string) ([]*store.RetrievedDocument, error)
	Count(ctx context.Context) (int64, error)
}
