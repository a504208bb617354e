package store

import "time"

// ConversationSession is the live mapping between an application user
// identity and the remote NLU session token. It never touches the
// database; the registry that holds it owns expiry.
type ConversationSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
