package contract

import (
	"context"

	"campus-chatbot-be/pkg/store"
)

// SessionRegistry maps a user identity to its live remote NLU session.
// Entries expire after a fixed idle window with no sliding renewal.
// Absence is a valid state; no operation here returns a domain error
// for a missing entry.
type SessionRegistry interface {
	// GetOrCreate returns the live session for the user, minting one if
	// none exists. Two concurrent callers for the same user must observe
	// the same token.
	GetOrCreate(ctx context.Context, userId string) (*store.ConversationSession, error)
	// Reset removes the entry whether or not one exists.
	Reset(ctx context.Context, userId string) error
	// Info is a read-only lookup; it never extends the idle window.
	Info(ctx context.Context, userId string) (*store.ConversationSession, bool, error)
}
