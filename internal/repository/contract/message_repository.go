package contract

import (
	"context"

	"campus-chatbot-be/internal/entity"
	"campus-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	DeleteBySession(ctx context.Context, sessionId uuid.UUID, userId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
