package mapper

import (
	"campus-chatbot-be/internal/entity"
	"campus-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var payload []byte
	if len(msg.Payload) > 0 {
		payload = []byte(msg.Payload)
	}

	return &entity.Message{
		Id:             msg.Id,
		SessionId:      msg.SessionId,
		UserId:         msg.UserId,
		MessageText:    msg.MessageText,
		SenderType:     msg.SenderType,
		IntentDetected: msg.IntentDetected,
		Confidence:     msg.Confidence,
		Payload:        payload,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var payload datatypes.JSON
	if len(msg.Payload) > 0 {
		payload = datatypes.JSON(msg.Payload)
	}

	return &model.Message{
		Id:             msg.Id,
		SessionId:      msg.SessionId,
		UserId:         msg.UserId,
		MessageText:    msg.MessageText,
		SenderType:     msg.SenderType,
		IntentDetected: msg.IntentDetected,
		Confidence:     msg.Confidence,
		Payload:        payload,
		CreatedAt:      msg.CreatedAt,
	}
}

// Profile Mappers

func (m *ChatMapper) UserProfileToEntity(p *model.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}

	return &entity.UserProfile{
		Id:        p.Id,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
