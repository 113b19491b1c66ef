package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kk7188048/Rag-NewsArticles/internal/config"
	"github.com/kk7188048/Rag-NewsArticles/internal/controller"
	"github.com/kk7188048/Rag-NewsArticles/internal/handler"
	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/implementation"
	"github.com/kk7188048/Rag-NewsArticles/internal/service"
	"github.com/kk7188048/Rag-NewsArticles/internal/websocket"
	"github.com/kk7188048/Rag-NewsArticles/pkg/embedding"
	"github.com/kk7188048/Rag-NewsArticles/pkg/embedding/jina"
	"github.com/kk7188048/Rag-NewsArticles/pkg/generation"
	"github.com/kk7188048/Rag-NewsArticles/pkg/ingest"
	"github.com/kk7188048/Rag-NewsArticles/pkg/llm/factory"
	pktNats "github.com/kk7188048/Rag-NewsArticles/pkg/nats"
	"github.com/kk7188048/Rag-NewsArticles/pkg/rag"
	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
	memorysession "github.com/kk7188048/Rag-NewsArticles/pkg/session/memory"
	redissession "github.com/kk7188048/Rag-NewsArticles/pkg/session/redis"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// RAG pipeline, exposed so main can initialize it and the server can
	// report readiness.
	Pipeline *rag.Pipeline

	// Background services (exposed for main.go to run)
	ArchiverService service.IArchiverService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider per config
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.LLMTimeout)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.LLMTimeout)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina, cfg.Ai.LLMTimeout)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	}
	embeddingGateway := embedding.NewGateway(embeddingProvider, cfg.Ai.EmbeddingDimension, sysLogger)

	// LLM provider per config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Ai.LLMTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	generationGateway := generation.NewGateway(llmProvider, sysLogger)

	// NATS (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// Session store: Redis when reachable, in-process cache otherwise so
	// the chat still works in dev without infrastructure.
	var sessionStore session.Store
	if redisUp {
		sessionStore = redissession.NewRedisSessionStore(rdb, cfg.Session.TTL, sysLogger)
	} else {
		log.Printf("[WARN] Falling back to in-memory session store")
		sessionStore = memorysession.NewInMemorySessionStore(cfg.Session.TTL)
	}

	// WebSocket hub. Without Redis the hub runs in single-node mode.
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	var hubRedis *redis.Client
	if redisUp {
		hubRedis = rdb
	}
	wsHub := websocket.NewHub(hubRedis, wsLogger)
	go wsHub.Run()

	// Repositories
	articleIndex := implementation.NewArticleIndexRepository(db)
	transcripts := implementation.NewTranscriptRepository(db)

	// Ingestion
	ingestService := ingest.NewService(ingest.Options{
		Timeout:     cfg.Ingest.FeedTimeout,
		MaxPerFeed:  cfg.Ingest.MaxPerFeed,
		MaxParallel: cfg.Ingest.MaxParallel,
	}, sysLogger)

	// RAG pipeline
	pipeline := rag.NewPipeline(
		embeddingGateway,
		articleIndex,
		generationGateway,
		ingestService,
		cfg.Ai.TopK,
		sysLogger,
	)

	// Transcript archival: chat turns publish to the internal bus, the
	// archiver mirrors Redis histories into Postgres.
	publisherService := service.NewPublisherService(cfg.Keys.ArchiveTopic, pubSub)
	archiverService := service.NewArchiverService(
		pubSub,
		cfg.Keys.ArchiveTopic,
		sessionStore,
		transcripts,
		sysLogger,
	)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	chatService := service.NewChatService(
		sessionStore,
		pipeline,
		publisherService,
		eventPublisher,
		sysLogger,
	)

	wsHandler := handler.NewChatWSHandler(chatService, wsHub, wsLogger)

	return &Container{
		ChatController:  controller.NewChatController(chatService, wsHandler),
		Pipeline:        pipeline,
		ArchiverService: archiverService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
	}
}

// InitializePipeline performs the cold-start ingestion with a generous
// deadline. Called from main after the container is built.
func (c *Container) InitializePipeline(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	return c.Pipeline.Initialize(ctx)
}
