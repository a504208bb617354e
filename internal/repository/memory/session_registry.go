package memory

import (
	"context"
	"sync"
	"time"

	"campus-chatbot-be/internal/repository/contract"
	"campus-chatbot-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRegistry keeps the live user -> NLU session mapping in process
// memory. Entries carry a fixed idle deadline; the cache purges expired
// ones in the background and Get refuses them lazily, so no per-entry
// timer is needed.
type SessionRegistry struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRegistry(idleWindow time.Duration) *SessionRegistry {
	// Purge expired entries every 10 minutes
	c := cache.New(idleWindow, 10*time.Minute)
	return &SessionRegistry{
		cache: c,
	}
}

func (r *SessionRegistry) GetOrCreate(ctx context.Context, userId string) (*store.ConversationSession, error) {
	// Serialize the read-modify-write so two concurrent callers cannot
	// both mint a token for the same user.
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(userId); found {
		return x.(*store.ConversationSession), nil
	}

	session := &store.ConversationSession{
		Token:     uuid.NewString(),
		UserID:    userId,
		CreatedAt: time.Now(),
	}
	r.cache.Set(userId, session, cache.DefaultExpiration)
	return session, nil
}

func (r *SessionRegistry) Reset(ctx context.Context, userId string) error {
	r.cache.Delete(userId)
	return nil
}

func (r *SessionRegistry) Info(ctx context.Context, userId string) (*store.ConversationSession, bool, error) {
	if x, found := r.cache.Get(userId); found {
		return x.(*store.ConversationSession), true, nil
	}
	return nil, false, nil
}

var _ contract.SessionRegistry = (*SessionRegistry)(nil)
