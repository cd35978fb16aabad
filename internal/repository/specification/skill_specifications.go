package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy filters rows belonging to a user
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// BySkillType filters skills by direction (INCOMING/OUTGOING)
type BySkillType struct {
	Type string
}

func (s BySkillType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
