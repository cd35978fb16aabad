package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (h *Hub) clientCount(chatId uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chats[chatId])
}

func (h *Hub) chatCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chats)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestHubRegisterAndPrune(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	chatId := uuid.New()
	a := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 1)}
	b := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 1)}

	hub.register <- a
	hub.register <- b
	waitFor(t, func() bool { return hub.clientCount(chatId) == 2 })

	hub.unregister <- a
	waitFor(t, func() bool { return hub.clientCount(chatId) == 1 })

	// Last client out deletes the chat entry entirely.
	hub.unregister <- b
	waitFor(t, func() bool { return hub.chatCount() == 0 })
}

func TestBroadcastReachesAllChatClients(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	chatId := uuid.New()
	otherChat := uuid.New()
	a := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 4)}
	outsider := &Client{Hub: hub, ChatID: otherChat, UserID: uuid.New(), Send: make(chan []byte, 4)}

	hub.register <- a
	hub.register <- b
	hub.register <- outsider
	waitFor(t, func() bool { return hub.clientCount(chatId) == 2 && hub.clientCount(otherChat) == 1 })

	payload := []byte(`{"type":"message","text":"hi"}`)
	hub.Broadcast(chatId, payload)

	assert.Equal(t, payload, <-a.Send)
	assert.Equal(t, payload, <-b.Send)
	assert.Empty(t, outsider.Send)
}

func TestBroadcastDropsSlowClientWithoutBlockingOthers(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	chatId := uuid.New()
	slow := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 1)}
	fast := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 4)}

	hub.register <- slow
	hub.register <- fast
	waitFor(t, func() bool { return hub.clientCount(chatId) == 2 })

	// Fill the slow client's buffer so the next send cannot proceed.
	slow.Send <- []byte("stale")

	payload := []byte(`{"type":"message","text":"hi"}`)
	hub.Broadcast(chatId, payload)

	require.Equal(t, payload, <-fast.Send)
	// The slow client gets scheduled for removal, not the whole broadcast.
	waitFor(t, func() bool { return hub.clientCount(chatId) == 1 })
}

// Broadcasts racing client disconnects must never send on a closed channel.
// Run with -race; a send/close overlap also panics without it.
func TestBroadcastDuringChurnDoesNotPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	chatId := uuid.New()
	payload := []byte(`{"type":"message","text":"hi"}`)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.Broadcast(chatId, payload)
		}
	}()

	for i := 0; i < 50; i++ {
		c := &Client{Hub: hub, ChatID: chatId, UserID: uuid.New(), Send: make(chan []byte, 1)}
		hub.register <- c
		hub.Broadcast(chatId, payload)
		hub.unregister <- c
	}

	<-done
	waitFor(t, func() bool { return hub.clientCount(chatId) == 0 })
}
