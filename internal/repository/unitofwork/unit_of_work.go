package unitofwork

import (
	"context"

	"skill-exchange-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SkillRepository() contract.SkillRepository
	SkillVectorRepository() contract.SkillVectorRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
}
