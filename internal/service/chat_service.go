package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/internal/pkg/logger"
	"skill-exchange-be/internal/repository/specification"
	"skill-exchange-be/internal/repository/unitofwork"
	"skill-exchange-be/pkg/events"

	"github.com/google/uuid"
)

const maxMessageLength = 2000

type IChatService interface {
	CreateChat(ctx context.Context, callerId uuid.UUID, req *dto.CreateChatRequest) (*entity.Chat, error)
	GetChat(ctx context.Context, callerId uuid.UUID, chatId uuid.UUID) (*entity.Chat, error)
	GetUserChats(ctx context.Context, callerId uuid.UUID, limit, offset int) ([]*entity.Chat, int64, error)
	GetUserChatsWithMessages(ctx context.Context, callerId uuid.UUID, limit, offset int) ([]*dto.ChatListItem, int64, error)
	GetChatMessages(ctx context.Context, callerId uuid.UUID, chatId uuid.UUID, limit, offset int) ([]*entity.Message, int64, error)
	CreateMessage(ctx context.Context, callerId uuid.UUID, req *dto.CreateMessageRequest) (*entity.Message, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *chatService) CreateChat(ctx context.Context, callerId uuid.UUID, req *dto.CreateChatRequest) (*entity.Chat, error) {
	if req.User1Id == req.User2Id {
		return nil, apperrors.InvalidInput("same_user_chat", "Cannot start a chat with yourself")
	}
	if callerId != req.User1Id && callerId != req.User2Id {
		return nil, apperrors.AccessDenied("not_chat_participant", "Caller must be one of the chat participants")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, id := range []uuid.UUID{req.User1Id, req.User2Id} {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperrors.NotFound("user_not_found", "User not found")
		}
	}

	return uow.ChatRepository().GetOrCreate(ctx, req.User1Id, req.User2Id)
}

func (s *chatService) GetChat(ctx context.Context, callerId uuid.UUID, chatId uuid.UUID) (*entity.Chat, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.findParticipantChat(ctx, uow, callerId, chatId)
}

func (s *chatService) findParticipantChat(ctx context.Context, uow unitofwork.UnitOfWork, callerId uuid.UUID, chatId uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperrors.NotFound("chat_not_found", "Chat not found")
	}
	if !chat.HasParticipant(callerId) {
		return nil, apperrors.AccessDenied("not_chat_participant", "Caller is not a participant of this chat")
	}
	return chat, nil
}

func (s *chatService) GetUserChats(ctx context.Context, callerId uuid.UUID, limit, offset int) ([]*entity.Chat, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ChatRepository().Count(ctx, specification.WithParticipant{UserID: callerId})
	if err != nil {
		return nil, 0, err
	}

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.WithParticipant{UserID: callerId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}
	return chats, total, nil
}

func (s *chatService) GetUserChatsWithMessages(ctx context.Context, callerId uuid.UUID, limit, offset int) ([]*dto.ChatListItem, int64, error) {
	chats, total, err := s.GetUserChats(ctx, callerId, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items := make([]*dto.ChatListItem, 0, len(chats))
	for _, chat := range chats {
		other := chat.User1
		if chat.User1Id == callerId {
			other = chat.User2
		}
		item := &dto.ChatListItem{
			Id:        chat.Id,
			CreatedAt: chat.CreatedAt,
		}
		if other != nil {
			item.OtherUser = dto.ChatParticipant{
				Id:       other.Id,
				Username: other.Username,
			}
		}

		last, err := uow.MessageRepository().LastForChat(ctx, chat.Id)
		if err != nil {
			return nil, 0, err
		}
		if last != nil {
			item.LastMessage = &dto.MessageResponse{
				Id:        last.Id,
				ChatId:    last.ChatId,
				SenderId:  last.SenderId,
				Text:      last.Text,
				CreatedAt: last.CreatedAt,
			}
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (s *chatService) GetChatMessages(ctx context.Context, callerId uuid.UUID, chatId uuid.UUID, limit, offset int) ([]*entity.Message, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findParticipantChat(ctx, uow, callerId, chatId); err != nil {
		return nil, 0, err
	}

	total, err := uow.MessageRepository().Count(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		return nil, 0, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (s *chatService) CreateMessage(ctx context.Context, callerId uuid.UUID, req *dto.CreateMessageRequest) (*entity.Message, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.InvalidInput("empty_message", "Message text cannot be empty")
	}
	// Length is counted in characters, not bytes; multibyte text up to the
	// limit must pass.
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, apperrors.InvalidInput("message_too_long", "Message text exceeds 2000 characters")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findParticipantChat(ctx, uow, callerId, req.ChatId); err != nil {
		return nil, err
	}

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: callerId})
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, apperrors.NotFound("user_not_found", "User not found")
	}

	msg := &entity.Message{
		Id:        uuid.New(),
		ChatId:    req.ChatId,
		SenderId:  callerId,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	// Fan-out rides the event bus; a publish failure must not undo a
	// persisted message, so it is logged and swallowed.
	evt := events.BaseEvent{
		Type: events.MessageCreated,
		Data: map[string]interface{}{
			"message_id":      msg.Id,
			"chat_id":         msg.ChatId,
			"sender_id":       msg.SenderId,
			"sender_username": sender.Username,
			"text":            msg.Text,
			"created_at":      msg.CreatedAt,
		},
		OccurredAt: msg.CreatedAt,
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Error("chat", "failed to publish message event", map[string]interface{}{
			"message_id": msg.Id,
			"chat_id":    msg.ChatId,
			"error":      err.Error(),
		})
	}

	return msg, nil
}
