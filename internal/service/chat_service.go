package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/internal/dto"
	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/pkg/events"
	"github.com/kk7188048/Rag-NewsArticles/pkg/generation"
	"github.com/kk7188048/Rag-NewsArticles/pkg/rag"
	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

var (
	ErrEmptyMessage   = errors.New("message must not be empty")
	ErrSessionStorage = errors.New("failed to persist message")
)

// EventPublisher is the outbound event bus surface the chat service
// needs. Satisfied by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*dto.SessionHistoryResponse, error)
	GetSessionInfo(ctx context.Context, sessionID string) (*dto.SessionInfoResponse, error)
	ClearSession(ctx context.Context, sessionID string) error
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type chatService struct {
	sessions         session.Store
	processor        rag.QueryProcessor
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
}

func NewChatService(
	sessions session.Store,
	processor rag.QueryProcessor,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:         sessions,
		processor:        processor,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (c *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := c.sessions.CreateSession()
	c.logger.Info("CHAT", "Session created", map[string]interface{}{
		"session_id": id,
	})
	return &dto.CreateSessionResponse{SessionId: id}, nil
}

func (c *chatService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(request.Message) == "" {
		return nil, ErrEmptyMessage
	}

	// Any activity slides the session window forward, even before the
	// answer is ready.
	c.sessions.ExtendSession(ctx, request.SessionId)

	// Losing the user's own message breaks the conversation contract, so
	// this failure is hard.
	ok := c.sessions.SaveMessage(ctx, request.SessionId, session.Message{
		Type:    session.MessageTypeUser,
		Content: request.Message,
	})
	if !ok {
		return nil, ErrSessionStorage
	}

	result, err := c.processor.ProcessQuery(ctx, request.Message)
	if err != nil {
		return nil, err
	}

	sources := toSessionSources(result.Sources)

	// A lost bot message only costs history fidelity; the caller still
	// gets the answer, so log and continue.
	if ok := c.sessions.SaveMessage(ctx, request.SessionId, session.Message{
		Type:    session.MessageTypeBot,
		Content: result.Response,
		Sources: sources,
	}); !ok {
		c.logger.Warn("CHAT", "Failed to save bot message", map[string]interface{}{
			"session_id": request.SessionId,
		})
	}

	c.requestArchive(ctx, request.SessionId)
	c.publishTurnEvent(ctx, request.SessionId, result)

	return &dto.SendMessageResponse{
		SessionId:      request.SessionId,
		Query:          result.Query,
		Response:       result.Response,
		Sources:        result.Sources,
		RetrievedCount: result.RetrievedCount,
		Timestamp:      time.Now(),
	}, nil
}

func (c *chatService) GetHistory(ctx context.Context, sessionID string) (*dto.SessionHistoryResponse, error) {
	messages := c.sessions.GetSessionHistory(ctx, sessionID, session.DefaultHistoryLimit)

	out := make([]dto.HistoryMessage, len(messages))
	for i, m := range messages {
		sources := make([]store.SourceRef, len(m.Sources))
		for j, s := range m.Sources {
			sources[j] = store.SourceRef{Title: s.Title, Source: s.Source, Link: s.Link}
		}
		out[i] = dto.HistoryMessage{
			Type:      m.Type,
			Content:   m.Content,
			Sources:   sources,
			Timestamp: m.Timestamp,
		}
	}
	return &dto.SessionHistoryResponse{
		SessionId: sessionID,
		Messages:  out,
	}, nil
}

func (c *chatService) GetSessionInfo(ctx context.Context, sessionID string) (*dto.SessionInfoResponse, error) {
	info := c.sessions.GetSessionInfo(ctx, sessionID)
	return &dto.SessionInfoResponse{
		SessionId:    sessionID,
		Exists:       info.Exists,
		MessageCount: info.MessageCount,
		TTLSeconds:   int64(info.TTLRemaining.Seconds()),
	}, nil
}

func (c *chatService) ClearSession(ctx context.Context, sessionID string) error {
	c.sessions.ClearSession(ctx, sessionID)
	return nil
}

func (c *chatService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	stats := c.processor.GetStats(ctx)
	return &dto.StatsResponse{
		ArticleCount:  stats.ArticleCount,
		IsInitialized: stats.IsInitialized,
	}, nil
}

// requestArchive asks the transcript archiver to snapshot this session.
// Fire and forget: archival is an enrichment, not part of the reply path.
func (c *chatService) requestArchive(ctx context.Context, sessionID string) {
	if c.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.ArchiveTranscriptMessage{SessionId: sessionID})
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("CHAT", "Failed to publish archive request", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (c *chatService) publishTurnEvent(ctx context.Context, sessionID string, result *store.QueryResult) {
	if c.eventPublisher == nil {
		return
	}
	degraded := result.Response == generation.FallbackAnswer
	evt := events.NewChatTurnEvent(sessionID, result.Query, result.RetrievedCount, degraded)
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("CHAT", "Failed to publish chat turn event", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func toSessionSources(in []store.SourceRef) []session.SourceRef {
	out := make([]session.SourceRef, len(in))
	for i, s := range in {
		out[i] = session.SourceRef{Title: s.Title, Source: s.Source, Link: s.Link}
	}
	return out
}
