package memory

import (
	"context"
	"testing"
	"time"

	"github.com/kk7188048/Rag-NewsArticles/pkg/session"
)

func TestSaveAndReadChronologicalOrder(t *testing.T) {
	store := NewInMemorySessionStore(time.Minute)
	ctx := context.Background()
	id := store.CreateSession()

	for _, content := range []string{"first", "second", "third"} {
		if ok := store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: content}); !ok {
			t.Fatalf("SaveMessage(%q) failed", content)
		}
	}

	history := store.GetSessionHistory(ctx, id, 0)
	if len(history) != 3 {
		t.Fatalf("want 3 messages, got %d", len(history))
	}
	for i, want := range []string{"first", "second", "third"} {
		if history[i].Content != want {
			t.Fatalf("history[%d] = %q, want %q (oldest first)", i, history[i].Content, want)
		}
		if history[i].Timestamp.IsZero() {
			t.Fatal("store must stamp message timestamps")
		}
	}
}

func TestHistoryLimitKeepsNewest(t *testing.T) {
	store := NewInMemorySessionStore(time.Minute)
	ctx := context.Background()
	id := store.CreateSession()

	for _, content := range []string{"a", "b", "c", "d"} {
		store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: content})
	}

	history := store.GetSessionHistory(ctx, id, 2)
	if len(history) != 2 {
		t.Fatalf("want 2 messages, got %d", len(history))
	}
	if history[0].Content != "c" || history[1].Content != "d" {
		t.Fatalf("limit should keep the newest entries, got %q, %q", history[0].Content, history[1].Content)
	}
}

func TestAbsentSessionReadsEmpty(t *testing.T) {
	store := NewInMemorySessionStore(time.Minute)
	ctx := context.Background()

	history := store.GetSessionHistory(ctx, "nope", 10)
	if len(history) != 0 {
		t.Fatalf("absent session should read empty, got %d messages", len(history))
	}

	info := store.GetSessionInfo(ctx, "nope")
	if info.Exists || info.MessageCount != 0 {
		t.Fatalf("absent session info should be zero, got %+v", info)
	}
}

func TestClearSessionIdempotent(t *testing.T) {
	store := NewInMemorySessionStore(time.Minute)
	ctx := context.Background()
	id := store.CreateSession()

	store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: "hi"})

	if ok := store.ClearSession(ctx, id); !ok {
		t.Fatal("first clear failed")
	}
	if got := store.GetSessionHistory(ctx, id, 10); len(got) != 0 {
		t.Fatalf("session not cleared, %d messages remain", len(got))
	}
	// Clearing again is still success.
	if ok := store.ClearSession(ctx, id); !ok {
		t.Fatal("second clear failed")
	}
}

func TestGetSessionInfo(t *testing.T) {
	store := NewInMemorySessionStore(time.Minute)
	ctx := context.Background()
	id := store.CreateSession()

	store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: "q"})
	store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeBot, Content: "a"})

	info := store.GetSessionInfo(ctx, id)
	if !info.Exists {
		t.Fatal("session should exist")
	}
	if info.MessageCount != 2 {
		t.Fatalf("message count = %d, want 2", info.MessageCount)
	}
	if info.TTLRemaining <= 0 || info.TTLRemaining > time.Minute {
		t.Fatalf("ttl remaining = %v, want within (0, 1m]", info.TTLRemaining)
	}
}

func TestCreateSessionUnique(t *testing.T) {
	store := NewInMemorySessionStore(time.Minute)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := store.CreateSession()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSlidingWindowExpiry(t *testing.T) {
	store := NewInMemorySessionStore(50 * time.Millisecond)
	ctx := context.Background()
	id := store.CreateSession()

	store.SaveMessage(ctx, id, session.Message{Type: session.MessageTypeUser, Content: "hi"})

	// Keep touching the session past its original window.
	for i := 0; i < 3; i++ {
		time.Sleep(30 * time.Millisecond)
		store.ExtendSession(ctx, id)
	}
	if got := store.GetSessionHistory(ctx, id, 10); len(got) != 1 {
		t.Fatal("extended session should still hold its history")
	}

	time.Sleep(80 * time.Millisecond)
	if got := store.GetSessionHistory(ctx, id, 10); len(got) != 0 {
		t.Fatal("session should expire once activity stops")
	}
}
