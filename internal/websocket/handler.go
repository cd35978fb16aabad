package websocket

import (
	"encoding/json"

	"skill-exchange-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires an upgraded connection into the hub and blocks until the
// connection closes. Auth and participant checks happen before the
// upgrade; by the time this runs the caller is a verified chat member.
func ServeWs(hub *Hub, conn *websocket.Conn, chatId, userId uuid.UUID, sink MessageSink) {
	client := &Client{
		Hub:    hub,
		Conn:   conn,
		ChatID: chatId,
		UserID: userId,
		Send:   make(chan []byte, 256),
		sink:   sink,
	}
	client.Hub.register <- client

	ack, _ := json.Marshal(dto.ConnectionAckFrame{
		Type:   "connection",
		Status: "connected",
		ChatId: chatId,
		UserId: userId,
	})
	client.Send <- ack

	go client.writePump()
	client.readPump()
}
