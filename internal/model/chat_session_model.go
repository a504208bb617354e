package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string    `gorm:"type:varchar(255);not null;index:idx_chat_sessions_user_updated,priority:1"` // User ownership for data isolation
	Title     string    `gorm:"type:text;not null;default:'New Conversation'"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index:idx_chat_sessions_user_updated,priority:2,sort:desc"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
