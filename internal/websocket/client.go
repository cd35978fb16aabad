package websocket

import (
	"context"
	"encoding/json"
	"time"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/pkg/apperrors"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// A 2000-character message can occupy up to 8000 bytes in UTF-8;
	// leave headroom for JSON escaping and the frame envelope. Oversized
	// text is rejected with an error frame, not a connection close.
	maxMessageSize = 10 * 1024
)

// MessageSink persists an inbound chat message. Every frame goes through
// the same path as the HTTP endpoint.
type MessageSink interface {
	CreateMessage(ctx context.Context, callerId uuid.UUID, req *dto.CreateMessageRequest) (*entity.Message, error)
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	ChatID uuid.UUID
	UserID uuid.UUID

	// Buffered channel of outbound frames.
	Send chan []byte

	sink MessageSink
}

// readPump pumps inbound frames from the connection into the message sink.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"chat_id": c.ChatID,
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			return
		}

		var frame dto.InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.sendError("Malformed frame")
			continue
		}
		if frame.Type != "message" {
			c.sendError("Unknown frame type")
			continue
		}

		// Fresh unit of work per frame; nothing is held between frames.
		_, err = c.sink.CreateMessage(context.Background(), c.UserID, &dto.CreateMessageRequest{
			ChatId: c.ChatID,
			Text:   frame.Text,
		})
		if err != nil {
			if apperrors.IsExpected(err) {
				c.sendError(apperrors.AsError(err).Message)
				continue
			}
			c.Hub.logger.Error("Client", "Unhandled fault, closing connection", map[string]interface{}{
				"chat_id": c.ChatID,
				"user_id": c.UserID,
				"error":   err.Error(),
			})
			c.closeWithError()
			return
		}
		// Broadcast of the persisted message rides the event bus.
	}
}

// sendError pushes an error frame to this client only.
func (c *Client) sendError(msg string) {
	data, err := json.Marshal(dto.ErrorFrame{Type: "error", Message: msg})
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// closeWithError attempts a graceful 1011 close; secondary write errors
// are suppressed since the connection is being torn down anyway.
func (c *Client) closeWithError() {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.Conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "internal error"),
	)
}

// writePump pumps frames from the hub to the websocket connection.
// Frames are written one per websocket message; each is a standalone
// JSON document and must not be concatenated.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
