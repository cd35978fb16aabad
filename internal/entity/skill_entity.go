package entity

import (
	"time"

	"github.com/google/uuid"
)

type SkillType string

const (
	SkillTypeIncoming SkillType = "INCOMING"
	SkillTypeOutgoing SkillType = "OUTGOING"
)

// Valid reports whether t is one of the two known skill directions.
func (t SkillType) Valid() bool {
	return t == SkillTypeIncoming || t == SkillTypeOutgoing
}

type Skill struct {
	Id          uuid.UUID
	Type        SkillType
	Name        string
	Description *string
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
