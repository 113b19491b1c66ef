package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
	redissession "github.com/kk7188048/Rag-NewsArticles/pkg/session/redis"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not reachable: %v", err)
	}
	return client
}

func TestRedisSessionLifecycle(t *testing.T) {
	client := redisClient(t)
	store := redissession.NewRedisSessionStore(client, 2*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	id := store.CreateSession()

	assert.True(t, store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: "first"}))
	assert.True(t, store.SaveMessage(ctx, id, session.Message{
		Type:    session.MessageTypeBot,
		Content: "second",
		Sources: []session.SourceRef{{Title: "T", Source: "S", Link: "https://example.com"}},
	}))

	history := store.GetSessionHistory(ctx, id, 10)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Content, "history must be oldest first")
	assert.Equal(t, "second", history[1].Content)
	assert.Len(t, history[1].Sources, 1)

	info := store.GetSessionInfo(ctx, id)
	assert.True(t, info.Exists)
	assert.Equal(t, int64(2), info.MessageCount)
	assert.Greater(t, info.TTLRemaining, time.Duration(0))

	assert.True(t, store.ExtendSession(ctx, id))

	assert.True(t, store.ClearSession(ctx, id))
	assert.Empty(t, store.GetSessionHistory(ctx, id, 10))
	// Idempotent on an absent key.
	assert.True(t, store.ClearSession(ctx, id))
}

func TestRedisSessionExpiry(t *testing.T) {
	client := redisClient(t)
	store := redissession.NewRedisSessionStore(client, time.Second, logger.NewNopLogger())
	ctx := context.Background()

	id := store.CreateSession()
	require.True(t, store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: "hi"}))

	time.Sleep(1500 * time.Millisecond)

	assert.Empty(t, store.GetSessionHistory(ctx, id, 10), "session should expire with its TTL")
	info := store.GetSessionInfo(ctx, id)
	assert.False(t, info.Exists)
}
