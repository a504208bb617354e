package service

import (
	"context"
	"strings"
	"time"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/dto"
	"campus-chatbot-be/internal/pkg/logger"
	"campus-chatbot-be/internal/repository/contract"
	"campus-chatbot-be/pkg/nlu"
)

// IConversationService is the only component that talks to the NLU
// engine. It owns the text validation, the user -> session resolution
// and the normalization of engine responses.
type IConversationService interface {
	SendMessage(ctx context.Context, userId, text string) (*dto.SendMessageResponse, error)
	ResetConversation(ctx context.Context, userId string) error
	SessionStatus(ctx context.Context, userId string) (*dto.SessionInfoResponse, error)
}

type conversationService struct {
	registry contract.SessionRegistry
	provider nlu.Provider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewConversationService(
	registry contract.SessionRegistry,
	provider nlu.Provider,
	timeout time.Duration,
	sysLogger logger.ILogger,
) IConversationService {
	return &conversationService{
		registry: registry,
		provider: provider,
		timeout:  timeout,
		logger:   sysLogger,
	}
}

func (s *conversationService) SendMessage(ctx context.Context, userId, text string) (*dto.SendMessageResponse, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperror.InvalidInput("message cannot be empty")
	}

	session, err := s.registry.GetOrCreate(ctx, userId)
	if err != nil {
		return nil, apperror.Upstream("failed to resolve conversation session", err)
	}

	rpcCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Single RPC, no internal retry; the caller decides how to degrade.
	result, err := s.provider.DetectIntent(rpcCtx, trimmed, session.Token)
	if err != nil {
		s.logger.Error("conversation", "detect intent failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, apperror.Upstream("failed to process message", err)
	}

	messages := result.Parts
	if messages == nil {
		messages = []nlu.Part{}
	}

	return &dto.SendMessageResponse{
		Success:      true,
		Messages:     messages,
		Intent:       result.Intent,
		Confidence:   result.Confidence,
		CurrentPage:  result.CurrentPage,
		SessionToken: session.Token,
	}, nil
}

func (s *conversationService) ResetConversation(ctx context.Context, userId string) error {
	return s.registry.Reset(ctx, userId)
}

func (s *conversationService) SessionStatus(ctx context.Context, userId string) (*dto.SessionInfoResponse, error) {
	session, active, err := s.registry.Info(ctx, userId)
	if err != nil {
		return nil, apperror.Upstream("failed to read conversation session", err)
	}
	if !active {
		return &dto.SessionInfoResponse{Active: false}, nil
	}

	createdAt := session.CreatedAt
	return &dto.SessionInfoResponse{
		Active:       true,
		SessionToken: session.Token,
		CreatedAt:    &createdAt,
	}, nil
}
