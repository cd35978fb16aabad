package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WithParticipant filters chats having the user on either side
type WithParticipant struct {
	UserID uuid.UUID
}

func (s WithParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user1_id = ? OR user2_id = ?", s.UserID, s.UserID)
}

// ByParticipants filters chats by the canonical (user1, user2) pair.
// Callers must pass the pair already in canonical order.
type ByParticipants struct {
	User1ID uuid.UUID
	User2ID uuid.UUID
}

func (s ByParticipants) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user1_id = ? AND user2_id = ?", s.User1ID, s.User2ID)
}

// ByChatID filters messages by chat
type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}
