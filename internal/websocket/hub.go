package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/logger"
)

// chatEventsChannel is the Redis pub/sub channel used to fan chat frames
// out to every instance in the cluster.
const chatEventsChannel = "chat_events"

type association struct {
	client    *Client
	sessionID string
}

type Hub struct {
	// Connected clients map: session id -> clients (multi-tab support).
	// Clients that have not created a session yet sit under the empty key.
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	associate  chan association

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Nil in single-node mode.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		associate:  make(chan association),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("HUB", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case assoc := <-h.associate:
			// Re-key a connection after create_session assigns it an id.
			h.mu.Lock()
			h.detachLocked(assoc.client)
			assoc.client.SessionID = assoc.sessionID
			h.clients[assoc.sessionID] = append(h.clients[assoc.sessionID], assoc.client)
			h.mu.Unlock()
		}
	}
}

// removeLocked drops the client and closes its send channel. Caller holds mu.
func (h *Hub) removeLocked(client *Client) {
	if h.detachLocked(client) {
		close(client.Send)
		h.logger.Info("HUB", "Client unregistered", map[string]interface{}{"session_id": client.SessionID})
	}
}

// detachLocked removes the client from its current key without closing
// the channel. Caller holds mu.
func (h *Hub) detachLocked(client *Client) bool {
	clients, ok := h.clients[client.SessionID]
	if !ok {
		return false
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			if len(h.clients[client.SessionID]) == 0 {
				delete(h.clients, client.SessionID)
			}
			return true
		}
	}
	return false
}

// Associate binds a connected client to a session id.
func (h *Hub) Associate(client *Client, sessionID string) {
	h.associate <- association{client: client, sessionID: sessionID}
}

// Send delivers a frame to every connection on the session. With Redis
// available delivery goes through pub/sub so sibling instances (and this
// one, via its own subscription) each deliver exactly once.
func (h *Hub) Send(sessionID string, data []byte) {
	if h.rdb == nil {
		h.sendLocal(sessionID, data)
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"target_session_id": sessionID,
		"message":           json.RawMessage(data),
	})
	if err != nil {
		h.logger.Error("HUB", "Failed to marshal cluster frame", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		return
	}
	if err := h.rdb.Publish(context.Background(), chatEventsChannel, payload).Err(); err != nil {
		h.logger.Error("HUB", "Failed to publish cluster frame", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (h *Hub) sendLocal(sessionID string, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[sessionID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("HUB", "Client send buffer full, dropping connection", map[string]interface{}{
				"session_id": sessionID,
			})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, chatEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("HUB", "Malformed cluster frame", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.sendLocal(payload.TargetSessionID, payload.Message)
	}
}
