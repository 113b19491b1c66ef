package dto

import (
	"time"

	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

type SendMessageResponse struct {
	SessionId      string            `json:"session_id"`
	Query          string            `json:"query"`
	Response       string            `json:"response"`
	Sources        []store.SourceRef `json:"sources"`
	RetrievedCount int               `json:"retrieved_count"`
	Timestamp      time.Time         `json:"timestamp"`
}

type HistoryMessage struct {
	Type      string            `json:"type"` // "user" or "bot"
	Content   string            `json:"content"`
	Sources   []store.SourceRef `json:"sources,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type SessionHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Messages  []HistoryMessage `json:"messages"`
}

type SessionInfoResponse struct {
	SessionId    string `json:"session_id"`
	Exists       bool   `json:"exists"`
	MessageCount int64  `json:"message_count"`
	TTLSeconds   int64  `json:"ttl_seconds"`
}

// ArchiveTranscriptMessage is the internal bus payload that asks the
// archiver to snapshot a session's history into Postgres.
type ArchiveTranscriptMessage struct {
	SessionId string `json:"session_id"`
}

type StatsResponse struct {
	ArticleCount  int64 `json:"article_count"`
	IsInitialized bool  `json:"is_initialized"`
}
