package contract

import (
	"context"

	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
)

type TranscriptRepository interface {
	// UpsertTranscript replaces the archived history for a session.
	UpsertTranscript(ctx context.Context, sessionID string, messages []session.Message) error
	GetTranscript(ctx context.Context, sessionID string) ([]session.Message, error)
}
