package redissession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/pkg/session"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps each session as a Redis list under session:<id>:messages
// with the TTL attached to the key. Redis enforces expiry natively, so
// no application-level sweeping is needed.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration, log logger.ILogger) session.Store {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Store{client: client, ttl: ttl, logger: log}
}

func messagesKey(sessionID string) string {
	return fmt.Sprintf("session:%s:messages", sessionID)
}

func (s *Store) CreateSession() string {
	return uuid.NewString()
}

func (s *Store) SaveMessage(ctx context.Context, sessionID string, msg session.Message) bool {
	msg.Timestamp = time.Now()

	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("SESSION", "Failed to marshal message", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return false
	}

	key := messagesKey(sessionID)
	if err := s.client.LPush(ctx, key, data).Err(); err != nil {
		s.logger.Error("SESSION", "Failed to save message", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return false
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		s.logger.Warn("SESSION", "Failed to refresh TTL after write", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
	return true
}

func (s *Store) GetSessionHistory(ctx context.Context, sessionID string, limit int) []session.Message {
	if limit <= 0 {
		limit = session.DefaultHistoryLimit
	}

	raw, err := s.client.LRange(ctx, messagesKey(sessionID), 0, int64(limit-1)).Result()
	if err != nil {
		s.logger.Error("SESSION", "Failed to read history", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return []session.Message{}
	}

	// The list is newest-first; walk it backwards for chronological order.
	messages := make([]session.Message, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var msg session.Message
		if err := json.Unmarshal([]byte(raw[i]), &msg); err != nil {
			s.logger.Warn("SESSION", "Skipping malformed history entry", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

func (s *Store) ExtendSession(ctx context.Context, sessionID string) bool {
	if err := s.client.Expire(ctx, messagesKey(sessionID), s.ttl).Err(); err != nil {
		s.logger.Error("SESSION", "Failed to extend session", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return false
	}
	return true
}

func (s *Store) ClearSession(ctx context.Context, sessionID string) bool {
	if err := s.client.Del(ctx, messagesKey(sessionID)).Err(); err != nil {
		s.logger.Error("SESSION", "Failed to clear session", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return false
	}
	return true
}

func (s *Store) GetSessionInfo(ctx context.Context, sessionID string) session.Info {
	key := messagesKey(sessionID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return session.Info{}
	}

	count, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return session.Info{}
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = 0
	}

	return session.Info{Exists: true, MessageCount: count, TTLRemaining: ttl}
}
