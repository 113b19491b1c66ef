package main

import (
	"context"
	"log"

	"github.com/kk7188048/Rag-NewsArticles/internal/bootstrap"
	"github.com/kk7188048/Rag-NewsArticles/internal/config"
	"github.com/kk7188048/Rag-NewsArticles/internal/server"
	"github.com/kk7188048/Rag-NewsArticles/internal/tracer"
	"github.com/kk7188048/Rag-NewsArticles/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Transcript Archiver...")
		if err := container.ArchiverService.Consume(context.Background()); err != nil {
			log.Printf("Background Archiver Error: %v", err)
		}
	}()

	// 5. Warm the knowledge base. Runs in the background so the server
	// comes up immediately; chat answers 503 until this finishes.
	go func() {
		log.Println("Background: Initializing RAG pipeline...")
		if err := container.InitializePipeline(context.Background()); err != nil {
			log.Printf("Pipeline initialization failed: %v", err)
			return
		}
		log.Println("RAG pipeline ready")
	}()

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
