package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created.
type Message struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	SenderId  uuid.UUID
	Sender    *User
	Text      string
	CreatedAt time.Time
}
