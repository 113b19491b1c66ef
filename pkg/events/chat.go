package events

import "time"

const ChatTurnEventType = "chat.turn"

// NewChatTurnEvent records one completed question/answer exchange.
func NewChatTurnEvent(sessionID, query string, retrievedCount int, degraded bool) Event {
	return BaseEvent{
		Type: ChatTurnEventType,
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"query":           query,
			"retrieved_count": retrievedCount,
			"degraded":        degraded,
		},
		OccurredAt: time.Now(),
	}
}
