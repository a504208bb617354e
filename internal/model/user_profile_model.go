package model

import (
	"time"
)

// UserProfile mirrors the identity rows issued by the hosted auth
// provider. The primary key is the provider's opaque user id, so guest
// identities never have a row here.
type UserProfile struct {
	Id        string    `gorm:"type:varchar(255);primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255)"`
	AvatarURL *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
