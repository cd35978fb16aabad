package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	User1Id uuid.UUID `json:"user1_id" validate:"required"`
	User2Id uuid.UUID `json:"user2_id" validate:"required"`
}

type ChatResponse struct {
	Id        uuid.UUID `json:"id"`
	User1Id   uuid.UUID `json:"user1_id"`
	User2Id   uuid.UUID `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatParticipant struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// ChatListItem is the sidebar shape: the chat, the peer, and the most
// recent message (nil when the chat is still empty).
type ChatListItem struct {
	Id          uuid.UUID        `json:"id"`
	OtherUser   ChatParticipant  `json:"other_user"`
	LastMessage *MessageResponse `json:"last_message"`
	CreatedAt   time.Time        `json:"created_at"`
}

type CreateMessageRequest struct {
	ChatId uuid.UUID
	Text   string `json:"text" validate:"required"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chat_id"`
	SenderId  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageCreatedEvent is the pub/sub payload emitted after a message is
// persisted, consumed by the broadcast fan-out.
type MessageCreatedEvent struct {
	MessageId      uuid.UUID `json:"message_id"`
	ChatId         uuid.UUID `json:"chat_id"`
	SenderId       uuid.UUID `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// InboundFrame is what a websocket client sends.
type InboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ConnectionAckFrame is pushed once, right after a successful upgrade.
type ConnectionAckFrame struct {
	Type   string    `json:"type"`
	Status string    `json:"status"`
	ChatId uuid.UUID `json:"chat_id"`
	UserId uuid.UUID `json:"user_id"`
}

// ErrorFrame goes to the offending sender only.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MessageBroadcastFrame fans out to every open socket of a chat.
type MessageBroadcastFrame struct {
	Type           string    `json:"type"`
	Id             uuid.UUID `json:"id"`
	ChatId         uuid.UUID `json:"chat_id"`
	SenderId       uuid.UUID `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}
