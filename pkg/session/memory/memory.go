package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/pkg/session"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store is the in-process session backend used when Redis is not
// configured, and in tests. go-cache gives us the same per-key sliding
// TTL semantics: every Set resets the expiry window.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration

	// go-cache item values are replaced wholesale; the mutex serializes
	// the read-modify-write in SaveMessage.
	mu sync.Mutex
}

func NewInMemorySessionStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	c := cache.New(ttl, 10*time.Minute)
	return &Store{cache: c, ttl: ttl}
}

func (s *Store) CreateSession() string {
	return uuid.NewString()
}

func (s *Store) SaveMessage(_ context.Context, sessionID string, msg session.Message) bool {
	msg.Timestamp = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []session.Message
	if x, found := s.cache.Get(sessionID); found {
		messages = x.([]session.Message)
	}

	// Newest-first, matching the Redis LPUSH layout.
	updated := make([]session.Message, 0, len(messages)+1)
	updated = append(updated, msg)
	updated = append(updated, messages...)

	s.cache.Set(sessionID, updated, s.ttl)
	return true
}

func (s *Store) GetSessionHistory(_ context.Context, sessionID string, limit int) []session.Message {
	if limit <= 0 {
		limit = session.DefaultHistoryLimit
	}

	x, found := s.cache.Get(sessionID)
	if !found {
		return []session.Message{}
	}
	messages := x.([]session.Message)
	if len(messages) > limit {
		messages = messages[:limit]
	}

	out := make([]session.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		out = append(out, messages[i])
	}
	return out
}

func (s *Store) ExtendSession(_ context.Context, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if x, found := s.cache.Get(sessionID); found {
		s.cache.Set(sessionID, x, s.ttl)
	}
	return true
}

func (s *Store) ClearSession(_ context.Context, sessionID string) bool {
	s.cache.Delete(sessionID)
	return true
}

func (s *Store) GetSessionInfo(_ context.Context, sessionID string) session.Info {
	x, expiresAt, found := s.cache.GetWithExpiration(sessionID)
	if !found {
		return session.Info{}
	}

	ttl := time.Duration(0)
	if !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
		if ttl < 0 {
			ttl = 0
		}
	}

	return session.Info{
		Exists:       true,
		MessageCount: int64(len(x.([]session.Message))),
		TTLRemaining: ttl,
	}
}
