package contract

import (
	"context"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// LastForChat returns the newest message of a chat, or nil when empty.
	LastForChat(ctx context.Context, chatId uuid.UUID) (*entity.Message, error)
}
