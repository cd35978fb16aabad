package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Type        string  `json:"type" validate:"required,oneof=INCOMING OUTGOING"`
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateSkillRequest struct {
	Id          uuid.UUID
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type BulkDeleteSkillsRequest struct {
	Ids []uuid.UUID `json:"ids" validate:"required,min=1,dive,required"`
}

type SearchSkillsRequest struct {
	Query  string  `json:"query" validate:"required,min=1"`
	Type   *string `json:"type" validate:"omitempty,oneof=INCOMING OUTGOING"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type SkillResponse struct {
	Id          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	UserId      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
