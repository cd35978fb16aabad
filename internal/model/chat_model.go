package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	User1Id   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_chat_pair"`
	User2Id   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_chat_pair"`
	User1     *User     `gorm:"foreignKey:User1Id"`
	User2     *User     `gorm:"foreignKey:User2Id"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chat) TableName() string {
	return "chats"
}
