package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"skill-exchange-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisChannel = "chat_events"

// Hub tracks open connections grouped by chat. One Run goroutine services
// membership; broadcasts iterate under RLock.
type Hub struct {
	// ChatID -> open connections (both participants, multi-device)
	chats map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		chats:      make(map[uuid.UUID][]*Client),
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
			h.chats[client.ChatID] = append(h.chats[client.ChatID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"chat_id": client.ChatID,
				"user_id": client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.chats[client.ChatID]; ok {
				found := false
				remaining := make([]*Client, 0, len(clients))
				for _, c := range clients {
					if c == client {
						found = true
						continue
					}
					remaining = append(remaining, c)
				}
				if found {
					close(client.Send)
					if len(remaining) == 0 {
						delete(h.chats, client.ChatID)
					} else {
						h.chats[client.ChatID] = remaining
					}
				}
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
				"chat_id": client.ChatID,
				"user_id": client.UserID,
			})
		}
	}
}

// Broadcast delivers data to every open connection of a chat, sender
// included. Delivery is best effort: a client with a full Send buffer is
// dropped and scheduled for removal without blocking the others.
//
// With redis configured the frame goes through the channel only; every
// instance, this one included, delivers it from the subscriber so each
// connection sees the frame exactly once.
func (h *Hub) Broadcast(chatId uuid.UUID, data []byte) {
	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"chat_id": chatId.String(),
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
		return
	}

	h.deliverLocal(chatId, data)
}

// deliverLocal sends while holding the read lock. Run closes Send channels
// under the write lock only, so a send can never race a close. The sends are
// non-blocking, so the lock is held briefly.
func (h *Hub) deliverLocal(chatId uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.chats[chatId] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
				"chat_id": chatId,
				"user_id": client.UserID,
			})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			ChatID  string          `json:"chat_id"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed redis payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		chatId, err := uuid.Parse(payload.ChatID)
		if err != nil {
			continue
		}
		h.deliverLocal(chatId, payload.Message)
	}
}
