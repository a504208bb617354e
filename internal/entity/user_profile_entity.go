package entity

import "time"

type UserProfile struct {
	Id        string
	Email     string
	FullName  string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
