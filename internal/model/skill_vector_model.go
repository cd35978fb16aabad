package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// SkillVector is the vector-index point for a skill name embedding.
// SkillId is a foreign key into skills by convention only: the index has no
// referential integrity, so a point may outlive its skill row and search
// must tolerate the stale id.
type SkillVector struct {
	SkillId   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Embedding pgvector.Vector `gorm:"type:vector(768);not null"`
	SkillType string          `gorm:"type:skill_type;not null;index"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (SkillVector) TableName() string {
	return "skill_vectors"
}
