package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	UserId string `json:"userId" validate:"required"`
	Title  string `json:"title"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    string    `json:"userId"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SaveMessageRequest struct {
	SessionId      uuid.UUID       `json:"sessionId" validate:"required"`
	UserId         string          `json:"userId" validate:"required"`
	MessageText    string          `json:"messageText" validate:"required"`
	SenderType     string          `json:"senderType" validate:"required,oneof=user bot"`
	IntentDetected *string         `json:"intentDetected"`
	Confidence     *float64        `json:"confidence"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

type MessageResponse struct {
	Id             uuid.UUID       `json:"id"`
	SessionId      uuid.UUID       `json:"sessionId"`
	UserId         string          `json:"userId"`
	MessageText    string          `json:"messageText"`
	SenderType     string          `json:"senderType"`
	IntentDetected *string         `json:"intentDetected,omitempty"`
	Confidence     *float64        `json:"confidence,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type UpdateSessionTitleRequest struct {
	UserId string `json:"userId" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

type ProfileResponse struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
