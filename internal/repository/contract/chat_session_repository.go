package contract

import (
	"context"

	"campus-chatbot-be/internal/entity"
	"campus-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	UpdateTitle(ctx context.Context, id uuid.UUID, userId string, title string) (int64, error)
	Touch(ctx context.Context, id uuid.UUID, userId string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, userId string) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
