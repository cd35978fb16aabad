package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chat links exactly two distinct users. User1Id < User2Id lexicographically
// so one row exists per unordered pair.
type Chat struct {
	Id        uuid.UUID
	User1Id   uuid.UUID
	User2Id   uuid.UUID
	User1     *User
	User2     *User
	CreatedAt time.Time
}

// HasParticipant reports whether userId is one of the two chat members.
func (c *Chat) HasParticipant(userId uuid.UUID) bool {
	return c.User1Id == userId || c.User2Id == userId
}
