package contract

import (
	"context"

	"skill-exchange-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredSkillPoint is a vector-index hit: the skill id and its cosine
// similarity to the query vector (1.0 = identical).
type ScoredSkillPoint struct {
	SkillId uuid.UUID
	Score   float64
}

// SkillVectorRepository is the vector-index side of the skill catalog.
// The index carries no referential integrity toward the skills table;
// callers must tolerate hits whose skill row no longer exists.
type SkillVectorRepository interface {
	Upsert(ctx context.Context, skillId uuid.UUID, vector []float32, skillType entity.SkillType) error
	Delete(ctx context.Context, skillId uuid.UUID) error
	DeleteMany(ctx context.Context, skillIds []uuid.UUID) error

	// Search returns up to limit points ordered by descending similarity
	// (ties broken by skill id, ascending). typeFilter and scoreThreshold
	// are optional; nil disables them.
	Search(ctx context.Context, vector []float32, typeFilter *entity.SkillType, limit, offset int, scoreThreshold *float64) ([]ScoredSkillPoint, error)

	// Count returns how many points pass the type filter, ignoring any
	// similarity threshold.
	Count(ctx context.Context, typeFilter *entity.SkillType) (int64, error)
}
