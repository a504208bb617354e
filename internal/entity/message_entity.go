package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type Message struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	UserId         string
	MessageText    string
	SenderType     string
	IntentDetected *string
	Confidence     *float64
	Payload        []byte // raw JSON of non-text response parts
	CreatedAt      time.Time
}
