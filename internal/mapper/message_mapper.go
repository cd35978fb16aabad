package mapper

import (
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/model"
)

type MessageMapper struct {
	userMapper *UserMapper
}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{userMapper: NewUserMapper()}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Sender:    m.userMapper.ToEntity(msg.Sender),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
