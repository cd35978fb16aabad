package mapper

import (
	"time"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/model"
)

type SkillMapper struct{}

func NewSkillMapper() *SkillMapper {
	return &SkillMapper{}
}

func (m *SkillMapper) ToEntity(s *model.Skill) *entity.Skill {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Skill{
		Id:          s.Id,
		Type:        entity.SkillType(s.Type),
		Name:        s.Name,
		Description: s.Description,
		UserId:      s.UserId,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *SkillMapper) ToModel(s *entity.Skill) *model.Skill {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Skill{
		Id:          s.Id,
		Type:        string(s.Type),
		Name:        s.Name,
		Description: s.Description,
		UserId:      s.UserId,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *SkillMapper) ToEntities(skills []*model.Skill) []*entity.Skill {
	entities := make([]*entity.Skill, len(skills))
	for i, s := range skills {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
