package service

import (
	"context"
	"errors"
	"time"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/internal/pkg/logger"
	"skill-exchange-be/internal/repository/memory"
	"skill-exchange-be/internal/repository/specification"
	"skill-exchange-be/internal/repository/unitofwork"
	"skill-exchange-be/pkg/embedding"

	"github.com/google/uuid"
)

// thresholdRatio scales the best probe score into the cutoff for the
// ranked query. Hits below bestScore*thresholdRatio are dropped.
const thresholdRatio = 0.5

type ISkillService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSkillRequest) (*entity.Skill, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSkillRequest) (*entity.Skill, error)
	Delete(ctx context.Context, userId uuid.UUID, skillId uuid.UUID) error
	BulkDelete(ctx context.Context, userId uuid.UUID, req *dto.BulkDeleteSkillsRequest) error
	GetById(ctx context.Context, skillId uuid.UUID) (*entity.Skill, error)
	GetAll(ctx context.Context, typeFilter *entity.SkillType, limit, offset int) ([]*entity.Skill, int64, error)
	GetUserSkills(ctx context.Context, userId uuid.UUID, typeFilter *entity.SkillType, limit, offset int) ([]*entity.Skill, int64, error)
	Search(ctx context.Context, req *dto.SearchSkillsRequest) ([]*entity.Skill, int64, error)
}

type skillService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	embeddingCache    *memory.EmbeddingCache
	logger            logger.ILogger
}

func NewSkillService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	embeddingCache *memory.EmbeddingCache,
	log logger.ILogger,
) ISkillService {
	return &skillService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		embeddingCache:    embeddingCache,
		logger:            log,
	}
}

func (s *skillService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSkillRequest) (*entity.Skill, error) {
	skillType := entity.SkillType(req.Type)
	if !skillType.Valid() {
		return nil, apperrors.InvalidInput("invalid_skill_type", "Type must be INCOMING or OUTGOING")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	skill := &entity.Skill{
		Id:          uuid.New(),
		Type:        skillType,
		Name:        req.Name,
		Description: req.Description,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	// The insert commits before the embedding call so a slow provider
	// cannot hold the transaction open or roll back the row.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.SkillRepository().Create(ctx, skill); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Relational row first, vector second. A late embedding failure leaves
	// the skill unsearchable until the next update re-indexes it.
	if err := s.indexSkill(ctx, uow, skill); err != nil {
		s.logger.Error("skill", "failed to index skill after create", map[string]interface{}{
			"skill_id": skill.Id,
			"error":    err.Error(),
		})
		return nil, err
	}

	return skill, nil
}

func (s *skillService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSkillRequest) (*entity.Skill, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	skill, err := uow.SkillRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, apperrors.NotFound("skill_not_found", "Skill not found")
	}
	if skill.UserId != userId {
		return nil, apperrors.AccessDenied("not_skill_owner", "Cannot modify another user's skill")
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Description != nil {
		skill.Description = req.Description
	}
	now := time.Now()
	skill.UpdatedAt = &now

	if err := uow.SkillRepository().Update(ctx, skill); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Re-embed unconditionally; cheaper than diffing and keeps the index
	// converged after any earlier indexing failure.
	if err := s.indexSkill(ctx, uow, skill); err != nil {
		s.logger.Error("skill", "failed to re-index skill after update", map[string]interface{}{
			"skill_id": skill.Id,
			"error":    err.Error(),
		})
		return nil, err
	}

	return skill, nil
}

func (s *skillService) indexSkill(ctx context.Context, uow unitofwork.UnitOfWork, skill *entity.Skill) error {
	res, err := s.embeddingProvider.Generate(skill.Name, "RETRIEVAL_DOCUMENT")
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			return apperrors.UpstreamUnavailable("embedding_unavailable", "Embedding provider unavailable", err)
		}
		return err
	}
	return uow.SkillVectorRepository().Upsert(ctx, skill.Id, res.Embedding.Values, skill.Type)
}

func (s *skillService) Delete(ctx context.Context, userId uuid.UUID, skillId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	skill, err := uow.SkillRepository().FindOne(ctx, specification.ByID{ID: skillId})
	if err != nil {
		return err
	}
	if skill == nil {
		return apperrors.NotFound("skill_not_found", "Skill not found")
	}
	if skill.UserId != userId {
		return apperrors.AccessDenied("not_skill_owner", "Cannot delete another user's skill")
	}

	// Row and vector live in the same database; one transaction removes
	// both or neither.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	if err := uow.SkillRepository().Delete(ctx, skillId); err != nil {
		return err
	}
	if err := uow.SkillVectorRepository().Delete(ctx, skillId); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *skillService) BulkDelete(ctx context.Context, userId uuid.UUID, req *dto.BulkDeleteSkillsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// All ids must exist and be owned by the caller before anything is
	// touched; a single bad id rejects the whole batch.
	skills, err := uow.SkillRepository().FindAll(ctx, specification.ByIDs{IDs: req.Ids})
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]*entity.Skill, len(skills))
	for _, sk := range skills {
		found[sk.Id] = sk
	}
	for _, id := range req.Ids {
		sk, ok := found[id]
		if !ok {
			return apperrors.NotFound("skill_not_found", "Skill not found")
		}
		if sk.UserId != userId {
			return apperrors.AccessDenied("not_skill_owner", "Cannot delete another user's skill")
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	if err := uow.SkillRepository().DeleteMany(ctx, req.Ids); err != nil {
		return err
	}
	if err := uow.SkillVectorRepository().DeleteMany(ctx, req.Ids); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *skillService) GetById(ctx context.Context, skillId uuid.UUID) (*entity.Skill, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	skill, err := uow.SkillRepository().FindOne(ctx, specification.ByID{ID: skillId})
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, apperrors.NotFound("skill_not_found", "Skill not found")
	}
	return skill, nil
}

func (s *skillService) GetAll(ctx context.Context, typeFilter *entity.SkillType, limit, offset int) ([]*entity.Skill, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if typeFilter != nil {
		specs = append(specs, specification.BySkillType{Type: string(*typeFilter)})
	}

	total, err := uow.SkillRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	skills, err := uow.SkillRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return skills, total, nil
}

func (s *skillService) GetUserSkills(ctx context.Context, userId uuid.UUID, typeFilter *entity.SkillType, limit, offset int) ([]*entity.Skill, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if typeFilter != nil {
		specs = append(specs, specification.BySkillType{Type: string(*typeFilter)})
	}

	total, err := uow.SkillRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	skills, err := uow.SkillRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return skills, total, nil
}

// Search runs the adaptive-threshold pipeline: embed the query, probe the
// index for the best score, then rank against a cutoff of half that score.
func (s *skillService) Search(ctx context.Context, req *dto.SearchSkillsRequest) ([]*entity.Skill, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var typeFilter *entity.SkillType
	if req.Type != nil {
		t := entity.SkillType(*req.Type)
		if !t.Valid() {
			return nil, 0, apperrors.InvalidInput("invalid_skill_type", "Type must be INCOMING or OUTGOING")
		}
		typeFilter = &t
	}

	queryVector, err := s.embedQuery(req.Query)
	if err != nil {
		return nil, 0, err
	}

	// Probe: best single hit, no threshold. An empty index (or empty type
	// slice) short-circuits the whole search.
	probe, err := uow.SkillVectorRepository().Search(ctx, queryVector, typeFilter, 1, 0, nil)
	if err != nil {
		return nil, 0, err
	}
	if len(probe) == 0 {
		return []*entity.Skill{}, 0, nil
	}
	threshold := probe[0].Score * thresholdRatio

	// Total counts every indexed point passing the type filter, not the
	// threshold. Pages near the end may come back short.
	total, err := uow.SkillVectorRepository().Count(ctx, typeFilter)
	if err != nil {
		return nil, 0, err
	}

	points, err := uow.SkillVectorRepository().Search(ctx, queryVector, typeFilter, req.Limit, req.Offset, &threshold)
	if err != nil {
		return nil, 0, err
	}
	if len(points) == 0 {
		return []*entity.Skill{}, total, nil
	}

	ids := make([]uuid.UUID, len(points))
	for i, p := range points {
		ids[i] = p.SkillId
	}

	skills, err := uow.SkillRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, 0, err
	}
	byId := make(map[uuid.UUID]*entity.Skill, len(skills))
	for _, sk := range skills {
		byId[sk.Id] = sk
	}

	// Merge preserves index order and silently drops points whose skill
	// row is gone (deleted between index and fetch).
	ordered := make([]*entity.Skill, 0, len(points))
	for _, p := range points {
		if sk, ok := byId[p.SkillId]; ok {
			ordered = append(ordered, sk)
		}
	}

	return ordered, total, nil
}

func (s *skillService) embedQuery(query string) ([]float32, error) {
	if vec, ok := s.embeddingCache.Get(query); ok {
		return vec, nil
	}

	res, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			return nil, apperrors.UpstreamUnavailable("embedding_unavailable", "Embedding provider unavailable", err)
		}
		return nil, err
	}

	s.embeddingCache.Set(query, res.Embedding.Values)
	return res.Embedding.Values, nil
}
