package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/implementation"
	"github.com/kk7188048/Rag-NewsArticles/pkg/database"
	"github.com/kk7188048/Rag-NewsArticles/pkg/embedding"
	"github.com/kk7188048/Rag-NewsArticles/pkg/embedding/jina"
	"github.com/kk7188048/Rag-NewsArticles/pkg/ingest"
)

// Seeds the article index with the bundled sample corpus. Useful for
// local development when live RSS feeds are unreachable or when you
// want a deterministic corpus to test retrieval against.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sysLogger := logger.NewZapLogger("logs/seed.log", false)
	defer sysLogger.Sync()

	var provider embedding.EmbeddingProvider
	if apiKey := os.Getenv("JINA_API_KEY"); apiKey != "" {
		provider = jina.NewJinaProvider(apiKey, 30*time.Second)
	}
	gateway := embedding.NewGateway(provider, 768, sysLogger)

	repo := implementation.NewArticleIndexRepository(db)
	ctx := context.Background()

	articles := ingest.SampleArticles()
	log.Printf("Seeding %d sample articles...", len(articles))

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.EmbeddingText()
	}
	res := gateway.Embed(ctx, texts)
	log.Printf("Embedded via %q path", res.Quality)

	items := make([]contract.IndexedArticle, len(articles))
	for i, a := range articles {
		items[i] = contract.IndexedArticle{Article: a, Embedding: res.Vectors[i], EmbeddingPath: res.Quality}
	}

	if err := repo.Upsert(ctx, items); err != nil {
		log.Fatalf("Error: Failed to upsert articles: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		log.Printf("Warn: Failed to count articles: %v", err)
	}

	log.Printf("Success: Article index seeded (%d rows total).", count)
}
