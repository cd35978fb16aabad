package mapper

import (
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/model"
)

type ChatMapper struct {
	userMapper *UserMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{userMapper: NewUserMapper()}
}

func (m *ChatMapper) ToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}

	return &entity.Chat{
		Id:        c.Id,
		User1Id:   c.User1Id,
		User2Id:   c.User2Id,
		User1:     m.userMapper.ToEntity(c.User1),
		User2:     m.userMapper.ToEntity(c.User2),
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}

	return &model.Chat{
		Id:        c.Id,
		User1Id:   c.User1Id,
		User2Id:   c.User2Id,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) ToEntities(chats []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(chats))
	for i, c := range chats {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
