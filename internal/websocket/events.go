package websocket

// Inbound events (client to server).
const (
	EventCreateSession = "create_session"
	EventSendMessage   = "send_message"
)

// Outbound events (server to client).
const (
	EventSessionCreated  = "session_created"
	EventBotTyping       = "bot_typing"
	EventMessageSent     = "message_sent"
	EventMessageReceived = "message_received"
	EventError           = "error"
)
