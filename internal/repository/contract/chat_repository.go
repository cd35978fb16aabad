package contract

import (
	"context"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	// GetOrCreate returns the single chat for the unordered user pair,
	// creating it with canonical ordering (user1 < user2) when absent.
	GetOrCreate(ctx context.Context, userAId, userBId uuid.UUID) (*entity.Chat, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
