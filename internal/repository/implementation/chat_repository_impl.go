package implementation

import (
	"context"
	"errors"
	"strings"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/mapper"
	"skill-exchange-be/internal/model"
	"skill-exchange-be/internal/repository/contract"
	"skill-exchange-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// canonicalPair orders the two participant ids so the smaller uuid is first.
// One row per unordered pair depends on every caller going through this.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b, a
	}
	return a, b
}

func (r *ChatRepositoryImpl) GetOrCreate(ctx context.Context, userAId, userBId uuid.UUID) (*entity.Chat, error) {
	user1Id, user2Id := canonicalPair(userAId, userBId)

	var m model.Chat
	query := r.applySpecifications(
		r.db.WithContext(ctx).Preload("User1").Preload("User2"),
		specification.ByParticipants{User1ID: user1Id, User2ID: user2Id},
	)
	err := query.First(&m).Error
	if err == nil {
		return r.mapper.ToEntity(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = model.Chat{
		Id:      uuid.New(),
		User1Id: user1Id,
		User2Id: user2Id,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}

	// Reload with participants for the response shape.
	if err := r.db.WithContext(ctx).Preload("User1").Preload("User2").First(&m, m.Id).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	var m model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("User1").Preload("User2"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var models []*model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("User1").Preload("User2"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chat{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
