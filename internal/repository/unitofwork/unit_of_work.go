package unitofwork

import (
	"context"

	"campus-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	MessageRepository() contract.MessageRepository
	UserProfileRepository() contract.UserProfileRepository
}
