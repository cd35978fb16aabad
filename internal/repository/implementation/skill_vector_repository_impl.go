package implementation

import (
	"context"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/model"
	"skill-exchange-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillVectorRepositoryImpl struct {
	db *gorm.DB
}

func NewSkillVectorRepository(db *gorm.DB) contract.SkillVectorRepository {
	return &SkillVectorRepositoryImpl{db: db}
}

func (r *SkillVectorRepositoryImpl) Upsert(ctx context.Context, skillId uuid.UUID, vector []float32, skillType entity.SkillType) error {
	m := &model.SkillVector{
		SkillId:   skillId,
		Embedding: pgvector.NewVector(vector),
		SkillType: string(skillType),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "skill_type", "updated_at"}),
		}).
		Create(m).Error
}

func (r *SkillVectorRepositoryImpl) Delete(ctx context.Context, skillId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("skill_id = ?", skillId).Delete(&model.SkillVector{}).Error
}

func (r *SkillVectorRepositoryImpl) DeleteMany(ctx context.Context, skillIds []uuid.UUID) error {
	if len(skillIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("skill_id IN ?", skillIds).Delete(&model.SkillVector{}).Error
}

// Search runs a cosine-similarity query. pgvector's <=> operator is cosine
// distance, so similarity = 1 - distance. Ordering is similarity DESC with
// skill_id ASC as a stable tie-break.
func (r *SkillVectorRepositoryImpl) Search(ctx context.Context, vector []float32, typeFilter *entity.SkillType, limit, offset int, scoreThreshold *float64) ([]contract.ScoredSkillPoint, error) {
	if limit <= 0 {
		limit = 10
	}

	type row struct {
		SkillId    uuid.UUID
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	query := r.db.WithContext(ctx).
		Table("skill_vectors").
		Select("skill_id, 1 - (embedding <=> ?) as similarity", queryVector)

	if typeFilter != nil {
		query = query.Where("skill_type = ?", string(*typeFilter))
	}
	if scoreThreshold != nil {
		query = query.Where("1 - (embedding <=> ?) >= ?", queryVector, *scoreThreshold)
	}

	err := query.
		Order("similarity DESC, skill_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]contract.ScoredSkillPoint, len(rows))
	for i, res := range rows {
		points[i] = contract.ScoredSkillPoint{
			SkillId: res.SkillId,
			Score:   res.Similarity,
		}
	}
	return points, nil
}

func (r *SkillVectorRepositoryImpl) Count(ctx context.Context, typeFilter *entity.SkillType) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.SkillVector{})
	if typeFilter != nil {
		query = query.Where("skill_type = ?", string(*typeFilter))
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
