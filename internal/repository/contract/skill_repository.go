package contract

import (
	"context"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SkillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	Update(ctx context.Context, skill *entity.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Skill, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Skill, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
