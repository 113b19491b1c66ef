package implementation

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kk7188048/Rag-NewsArticles/internal/mapper"
	"github.com/kk7188048/Rag-NewsArticles/internal/model"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

// upsertBatchSize keeps each INSERT within comfortable parameter limits
// for 768-dim vectors.
const upsertBatchSize = 100

type ArticleIndexRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArticleMapper
}

func NewArticleIndexRepository(db *gorm.DB) contract.ArticleIndexRepository {
	return &ArticleIndexRepositoryImpl{
		db:     db,
		mapper: mapper.NewArticleMapper(),
	}
}

func (r *ArticleIndexRepositoryImpl) Upsert(ctx context.Context, articles []contract.IndexedArticle) error {
	if len(articles) == 0 {
		return nil
	}

	models := make([]*model.ArticleEmbedding, len(articles))
	for i, a := range articles {
		models[i] = r.mapper.ToModel(a)
	}

	var errs []error
	for start := 0; start < len(models); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(models) {
			end = len(models)
		}
		batch := models[start:end]

		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(batch).Error
		if err != nil {
			// Keep going so one bad batch does not lose the rest of the corpus.
			errs = append(errs, fmt.Errorf("upsert batch %d-%d: %w", start, end, err))
		}
	}
	return errors.Join(errs...)
}

func (r *ArticleIndexRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, embeddingPath string) ([]*store.RetrievedDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) recovers the similarity.
	type result struct {
		model.ArticleEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("article_embeddings").
		Select("article_embeddings.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding_path = ?", embeddingPath).
		Where("deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*store.RetrievedDocument, len(results))
	for i, res := range results {
		docs[i] = r.mapper.ToRetrievedDocument(&res.ArticleEmbedding, res.Similarity)
	}
	return docs, nil
}

func (r *ArticleIndexRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ArticleEmbedding{}).Count(&count).Error
	return count, err
}
