package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kk7188048/Rag-NewsArticles/internal/model"
	"github.com/kk7188048/Rag-NewsArticles/internal/repository/contract"
	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
)

type TranscriptRepositoryImpl struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) contract.TranscriptRepository {
	return &TranscriptRepositoryImpl{db: db}
}

func (r *TranscriptRepositoryImpl) UpsertTranscript(ctx context.Context, sessionID string, messages []session.Message) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	row := &model.ChatTranscript{
		SessionId:    sessionID,
		Messages:     datatypes.JSON(payload),
		MessageCount: len(messages),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"messages", "message_count", "updated_at"}),
		}).
		Create(row).Error
}

func (r *TranscriptRepositoryImpl) GetTranscript(ctx context.Context, sessionID string) ([]session.Message, error) {
	var row model.ChatTranscript
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var messages []session.Message
	if err := json.Unmarshal(row.Messages, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return messages, nil
}
