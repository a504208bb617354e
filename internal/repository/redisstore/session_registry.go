package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campus-chatbot-be/internal/repository/contract"
	"campus-chatbot-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "conversation:session:"

// SessionRegistry is the Redis-backed variant of the registry, for
// deployments that need the mapping to survive restarts or to be shared
// across instances. SETNX gives the same single-mint guarantee the
// in-memory mutex does, across processes.
type SessionRegistry struct {
	client     *redis.Client
	idleWindow time.Duration
}

func NewSessionRegistry(redisURL string, idleWindow time.Duration) (*SessionRegistry, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &SessionRegistry{
		client:     redis.NewClient(opts),
		idleWindow: idleWindow,
	}, nil
}

func (r *SessionRegistry) GetOrCreate(ctx context.Context, userId string) (*store.ConversationSession, error) {
	key := keyPrefix + userId

	session := &store.ConversationSession{
		Token:     uuid.NewString(),
		UserID:    userId,
		CreatedAt: time.Now(),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}

	created, err := r.client.SetNX(ctx, key, payload, r.idleWindow).Result()
	if err != nil {
		return nil, err
	}
	if created {
		return session, nil
	}

	// Lost the race or the entry already existed: read the winner.
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET; retry once.
			return r.GetOrCreate(ctx, userId)
		}
		return nil, err
	}

	var existing store.ConversationSession
	if err := json.Unmarshal(raw, &existing); err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *SessionRegistry) Reset(ctx context.Context, userId string) error {
	return r.client.Del(ctx, keyPrefix+userId).Err()
}

func (r *SessionRegistry) Info(ctx context.Context, userId string) (*store.ConversationSession, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+userId).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var session store.ConversationSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, false, err
	}
	return &session, true, nil
}

var _ contract.SessionRegistry = (*SessionRegistry)(nil)
