package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/kk7188048/Rag-NewsArticles/internal/dto"
	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
)

type IArchiverService interface {
	Consume(ctx context.Context) error
}

// archiverService mirrors ephemeral Redis histories into the
// chat_transcripts table so conversations outlive session expiry.
type archiverService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessions    session.Store
	transcripts contract.TranscriptRepository
	logger      logger.ILogger
}

func NewArchiverService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessions session.Store,
	transcripts contract.TranscriptRepository,
	log logger.ILogger,
) IArchiverService {
	return &archiverService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessions:    sessions,
		transcripts: transcripts,
		logger:      log,
	}
}

func (a *archiverService) Consume(ctx context.Context) error {
	messages, err := a.pubSub.Subscribe(ctx, a.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			a.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (a *archiverService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveTranscriptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		a.logger.Error("ARCHIVER", "Failed to unmarshal archive request", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid, do not retry
		return
	}

	history := a.sessions.GetSessionHistory(ctx, payload.SessionId, session.DefaultHistoryLimit)
	if len(history) == 0 {
		// Session expired or was cleared between publish and consume.
		msg.Ack()
		return
	}

	if err := a.transcripts.UpsertTranscript(ctx, payload.SessionId, history); err != nil {
		a.logger.Error("ARCHIVER", "Failed to upsert transcript", map[string]interface{}{
			"session_id": payload.SessionId, "error": err.Error(),
		})
		msg.Nack() // transient DB trouble, retry
		return
	}

	msg.Ack()
}
