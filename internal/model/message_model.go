package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender    *User     `gorm:"foreignKey:SenderId"`
	Text      string    `gorm:"type:varchar(2000);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
