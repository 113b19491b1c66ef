package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kk7188048/Rag-NewsArticles/pkg/events"
	"github.com/kk7188048/Rag-NewsArticles/pkg/nats"
)

// Tails chat turn events off JetStream. Handy for watching query volume
// and fallback rates in a terminal without touching the API server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := nats.NewSubscriber(url)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(events.ChatTurnEventType, "chat-turn-monitor", func(ctx context.Context, event events.Event) error {
		data := event.Payload()
		marker := ""
		if degraded, _ := data["degraded"].(bool); degraded {
			marker = " [DEGRADED]"
		}
		log.Printf("%s session=%v retrieved=%v%s q=%q",
			event.EventType(), data["session_id"], data["retrieved_count"], marker, data["query"])
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down event monitor")
}
