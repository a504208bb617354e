package contract

import (
	"context"

	"campus-chatbot-be/internal/entity"
)

type UserProfileRepository interface {
	// FindById returns (nil, nil) when no profile exists; absence is a
	// normal outcome, not an error.
	FindById(ctx context.Context, id string) (*entity.UserProfile, error)
}
