package mapper

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/kk7188048/Rag-NewsArticles/internal/model"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

type ArticleMapper struct{}

func NewArticleMapper() *ArticleMapper {
	return &ArticleMapper{}
}

func (m *ArticleMapper) ToModel(a contract.IndexedArticle) *model.ArticleEmbedding {
	return &model.ArticleEmbedding{
		Id:            a.Article.ID,
		Title:         a.Article.Title,
		Content:       a.Article.Content,
		Link:          a.Article.Link,
		Source:        a.Article.Source,
		Category:      a.Article.Category,
		PubDate:       a.Article.PubDate,
		Embedding:     pgvector.NewVector(a.Embedding),
		EmbeddingPath: a.EmbeddingPath,
	}
}

func (m *ArticleMapper) ToRetrievedDocument(e *model.ArticleEmbedding, similarity float64) *store.RetrievedDocument {
	if e == nil {
		return nil
	}
	return &store.RetrievedDocument{
		Document: e.Content,
		Metadata: store.DocumentMetadata{
			Title:   e.Title,
			Source:  e.Source,
			Link:    e.Link,
			PubDate: e.PubDate.Format(time.RFC3339),
		},
		Distance:   1 - similarity,
		Similarity: similarity,
	}
}
