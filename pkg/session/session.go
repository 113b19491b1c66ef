package session

import (
	"context"
	"time"
)

const (
	// DefaultTTL is the sliding expiry window applied on every write.
	DefaultTTL = 3600 * time.Second

	// DefaultHistoryLimit bounds reads when the caller passes limit <= 0.
	DefaultHistoryLimit = 50
)

const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

// SourceRef is the attribution attached to a bot message.
type SourceRef struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link"`
}

// Message is one chat turn entry. Immutable once written; the timestamp
// is assigned by the store at write time, never by the caller.
type Message struct {
	Type      string      `json:"type"`
	Content   string      `json:"content"`
	Sources   []SourceRef `json:"sources,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Info is the introspection result for a session key.
type Info struct {
	Exists       bool          `json:"exists"`
	MessageCount int64         `json:"message_count"`
	TTLRemaining time.Duration `json:"ttl_remaining"`
}

// Store is a short-lived, per-conversation message log with sliding
// expiration. Implementations never return errors to callers: write
// operations report success as a bool, reads return empty results when
// the session is absent or the backend is unreachable.
type Store interface {
	// CreateSession generates a fresh unique id. Nothing is persisted
	// until the first SaveMessage.
	CreateSession() string

	// SaveMessage stamps msg with the current time, prepends it to the
	// session log and resets the TTL to the configured window.
	SaveMessage(ctx context.Context, sessionID string, msg Message) bool

	// GetSessionHistory returns at most limit most-recent messages in
	// chronological (oldest-first) order.
	GetSessionHistory(ctx context.Context, sessionID string, limit int) []Message

	// ExtendSession refreshes the TTL without mutating content.
	ExtendSession(ctx context.Context, sessionID string) bool

	// ClearSession deletes all state for the key. Idempotent: clearing
	// an absent session is still success.
	ClearSession(ctx context.Context, sessionID string) bool

	// GetSessionInfo reports existence, message count and remaining TTL.
	GetSessionInfo(ctx context.Context, sessionID string) Info
}
