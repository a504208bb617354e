package service

import (
	"context"
	"encoding/json"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/dto"
	"campus-chatbot-be/internal/entity"
	"campus-chatbot-be/internal/repository/specification"
	"campus-chatbot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultSessionTitle = "New Conversation"
	maxRecentSessions   = 10
)

type IHistoryService interface {
	CreateSession(ctx context.Context, userId, title string) (*dto.SessionResponse, error)
	SaveMessage(ctx context.Context, request *dto.SaveMessageRequest) (*dto.MessageResponse, error)
	GetRecentSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	GetSessionMessages(ctx context.Context, sessionId uuid.UUID, userId string) ([]*dto.MessageResponse, error)
	UpdateSessionTitle(ctx context.Context, sessionId uuid.UUID, userId, title string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID, userId string) error
	GetUserProfile(ctx context.Context, userId string) (*dto.ProfileResponse, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory) IHistoryService {
	return &historyService{uowFactory: uowFactory}
}

func (s *historyService) CreateSession(ctx context.Context, userId, title string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if title == "" {
		title = defaultSessionTitle
	}

	session := entity.ChatSession{
		Id:       uuid.New(),
		UserId:   userId,
		Title:    DeriveTitle(title),
		IsActive: true,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, apperror.Persistence("failed to create session", err)
	}

	return sessionToResponse(&session), nil
}

// SaveMessage inserts the message row and bumps the owning session's
// updated_at in a single transaction, so the recent-sessions ordering
// never drifts from the message log.
func (s *historyService) SaveMessage(ctx context.Context, request *dto.SaveMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message := entity.Message{
		Id:             uuid.New(),
		SessionId:      request.SessionId,
		UserId:         request.UserId,
		MessageText:    request.MessageText,
		SenderType:     request.SenderType,
		IntentDetected: request.IntentDetected,
		Confidence:     request.Confidence,
		Payload:        request.Payload,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Persistence("failed to start transaction", err)
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, apperror.Persistence("failed to save message", err)
	}

	rows, err := uow.ChatSessionRepository().Touch(ctx, request.SessionId, request.UserId)
	if err != nil {
		return nil, apperror.Persistence("failed to bump session", err)
	}
	if rows == 0 {
		return nil, apperror.NotOwned("session not found or access denied")
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Persistence("failed to commit message", err)
	}

	return messageToResponse(&message), nil
}

func (s *historyService) GetRecentSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Limit{N: maxRecentSessions},
	)
	if err != nil {
		return nil, apperror.Persistence("failed to fetch sessions", err)
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, sessionToResponse(session))
	}
	return response, nil
}

// GetSessionMessages returns an empty list when the session does not
// exist or belongs to someone else; callers must not learn which.
func (s *historyService) GetSessionMessages(ctx context.Context, sessionId uuid.UUID, userId string) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperror.Persistence("failed to fetch messages", err)
	}

	response := make([]*dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		response = append(response, messageToResponse(message))
	}
	return response, nil
}

func (s *historyService) UpdateSessionTitle(ctx context.Context, sessionId uuid.UUID, userId, title string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ChatSessionRepository()

	rows, err := repo.UpdateTitle(ctx, sessionId, userId, DeriveTitle(title))
	if err != nil {
		return nil, apperror.Persistence("failed to update session title", err)
	}
	if rows == 0 {
		return nil, apperror.NotOwned("session not found or access denied")
	}

	session, err := repo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Persistence("failed to reload session", err)
	}
	if session == nil {
		return nil, apperror.NotOwned("session not found or access denied")
	}

	return sessionToResponse(session), nil
}

func (s *historyService) DeleteSession(ctx context.Context, sessionId uuid.UUID, userId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.Persistence("failed to start transaction", err)
	}
	defer uow.Rollback()

	// The FK cascade would cover this too; deleting explicitly keeps the
	// ownership scope on both statements.
	if err := uow.MessageRepository().DeleteBySession(ctx, sessionId, userId); err != nil {
		return apperror.Persistence("failed to delete messages", err)
	}

	rows, err := uow.ChatSessionRepository().Delete(ctx, sessionId, userId)
	if err != nil {
		return apperror.Persistence("failed to delete session", err)
	}
	if rows == 0 {
		return apperror.NotOwned("session not found or access denied")
	}

	if err := uow.Commit(); err != nil {
		return apperror.Persistence("failed to commit delete", err)
	}
	return nil
}

func (s *historyService) GetUserProfile(ctx context.Context, userId string) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.UserProfileRepository().FindById(ctx, userId)
	if err != nil {
		return nil, apperror.Persistence("failed to fetch profile", err)
	}
	if profile == nil {
		return nil, nil
	}

	return &dto.ProfileResponse{
		Id:        profile.Id,
		Email:     profile.Email,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
	}, nil
}

func sessionToResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		UserId:    session.UserId,
		Title:     session.Title,
		IsActive:  session.IsActive,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func messageToResponse(message *entity.Message) *dto.MessageResponse {
	var payload json.RawMessage
	if len(message.Payload) > 0 {
		payload = json.RawMessage(message.Payload)
	}

	return &dto.MessageResponse{
		Id:             message.Id,
		SessionId:      message.SessionId,
		UserId:         message.UserId,
		MessageText:    message.MessageText,
		SenderType:     message.SenderType,
		IntentDetected: message.IntentDetected,
		Confidence:     message.Confidence,
		Payload:        payload,
		CreatedAt:      message.CreatedAt,
	}
}
