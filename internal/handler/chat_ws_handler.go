package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/kk7188048/Rag-NewsArticles/internal/dto"
	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
	"github.com/kk7188048/Rag-NewsArticles/internal/service"
	internalWS "github.com/kk7188048/Rag-NewsArticles/internal/websocket"
)

// ChatWSHandler bridges websocket frames to the chat service. It is the
// realtime twin of the REST chat controller: same service calls, framed
// as events instead of request/response pairs.
type ChatWSHandler struct {
	service service.IChatService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewChatWSHandler(svc service.IChatService, hub *internalWS.Hub, log logger.ILogger) *ChatWSHandler {
	return &ChatWSHandler{
		service: svc,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs upgrades the connection. An existing session can be resumed by
// passing ?session_id=; otherwise the client starts unbound and sends a
// create_session frame.
func (h *ChatWSHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("CHAT_WS", "Starting websocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID, h)
			h.logger.Info("CHAT_WS", "Websocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// HandleFrame dispatches one inbound frame. Runs on the connection's read
// goroutine, so a slow answer blocks only that client.
func (h *ChatWSHandler) HandleFrame(ctx context.Context, client *internalWS.Client, frame internalWS.Frame) {
	switch frame.Event {
	case internalWS.EventCreateSession:
		h.handleCreateSession(ctx, client)
	case internalWS.EventSendMessage:
		h.handleSendMessage(ctx, client, frame.Data)
	default:
		client.SendFrame(internalWS.EventError, map[string]string{
			"message": "unknown event: " + frame.Event,
		})
	}
}

func (h *ChatWSHandler) handleCreateSession(ctx context.Context, client *internalWS.Client) {
	res, err := h.service.CreateSession(ctx)
	if err != nil {
		client.SendFrame(internalWS.EventError, map[string]string{"message": "failed to create session"})
		return
	}
	h.hub.Associate(client, res.SessionId)
	client.SendFrame(internalWS.EventSessionCreated, res)
}

func (h *ChatWSHandler) handleSendMessage(ctx context.Context, client *internalWS.Client, data json.RawMessage) {
	var req dto.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		client.SendFrame(internalWS.EventError, map[string]string{"message": "malformed send_message payload"})
		return
	}
	if req.SessionId == "" {
		req.SessionId = client.SessionID
	}
	if req.SessionId == "" {
		client.SendFrame(internalWS.EventError, map[string]string{"message": "no session: send create_session first"})
		return
	}

	// Ack receipt, then show the typing indicator while the answer is
	// being produced.
	client.SendFrame(internalWS.EventMessageSent, map[string]interface{}{
		"session_id": req.SessionId,
		"timestamp":  time.Now(),
	})
	h.sendToSession(req.SessionId, internalWS.EventBotTyping, map[string]bool{"typing": true})

	res, err := h.service.SendMessage(ctx, &req)

	h.sendToSession(req.SessionId, internalWS.EventBotTyping, map[string]bool{"typing": false})

	if err != nil {
		h.logger.Error("CHAT_WS", "send_message failed", map[string]interface{}{
			"session_id": req.SessionId, "error": err.Error(),
		})
		client.SendFrame(internalWS.EventError, map[string]string{"message": err.Error()})
		return
	}

	h.sendToSession(req.SessionId, internalWS.EventMessageReceived, res)
}

// sendToSession fans a frame out to every connection on the session via
// the hub, so a second tab sees the bot reply too.
func (h *ChatWSHandler) sendToSession(sessionID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	frame, _ := json.Marshal(internalWS.Frame{Event: event, Data: data})
	h.hub.Send(sessionID, frame)
}
