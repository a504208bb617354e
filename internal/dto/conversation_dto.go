package dto

import (
	"time"

	"campus-chatbot-be/pkg/nlu"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
	UserId  string `json:"userId"`
}

type SendMessageResponse struct {
	Success      bool       `json:"success"`
	Messages     []nlu.Part `json:"messages"`
	Intent       string     `json:"intent"`
	Confidence   float64    `json:"confidence"`
	CurrentPage  string     `json:"currentPage,omitempty"`
	SessionToken string     `json:"sessionToken"`
}

type ResetConversationRequest struct {
	UserId string `json:"userId"`
}

type SessionInfoResponse struct {
	Active       bool       `json:"active"`
	SessionToken string     `json:"sessionToken,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}
