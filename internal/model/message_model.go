package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId         string         `gorm:"type:varchar(255);not null;index"`
	MessageText    string         `gorm:"type:text;not null"`
	SenderType     string         `gorm:"type:varchar(10);not null"` // "user" | "bot"
	IntentDetected *string        `gorm:"type:text"`
	Confidence     *float64       `gorm:"type:float8"`
	Payload        datatypes.JSON `gorm:"type:jsonb"` // rich response parts, bot messages only
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`

	Session *ChatSession `gorm:"foreignKey:SessionId;references:Id;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}
