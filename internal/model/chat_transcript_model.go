package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatTranscript archives a full session's message history as JSON.
// One row per session, replaced on every archived turn.
type ChatTranscript struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	Messages     datatypes.JSON `gorm:"type:jsonb;not null"`
	MessageCount int            `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (ChatTranscript) TableName() string {
	return "chat_transcripts"
}
