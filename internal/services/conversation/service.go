package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mor1n0/answerbot/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

// ErrUnknownUser is returned by Append when no conversation was ever ensured
// for the user. Callers always Ensure first, so seeing this error means a
// programming mistake rather than a user-facing condition.
var ErrUnknownUser = errors.New("conversation: unknown user")

// Role tags who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single role-tagged message in a conversation. Immutable once
// appended.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Store maps a Telegram user ID to their ordered conversation history.
type Store interface {
	// Ensure creates an empty conversation for the user if absent; idempotent.
	Ensure(ctx context.Context, userID int64) error

	// Append adds a turn to the user's conversation. Returns ErrUnknownUser
	// if Ensure was never called for the user.
	Append(ctx context.Context, userID int64, turn Turn) error

	// Reset deletes the user's conversation entirely and reports whether an
	// entry existed.
	Reset(ctx context.Context, userID int64) (bool, error)

	// Snapshot returns a copy of the full ordered conversation, or an empty
	// slice when the user has none.
	Snapshot(ctx context.Context, userID int64) ([]Turn, error)
}

// NewStore picks the Redis backend when Redis is available and falls back to
// the in-memory store otherwise.
func NewStore(redisService *redis.Service) Store {
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err == nil {
			log.Info().Msg("Using Redis conversation store")
			return &RedisStore{redisService: redisService}
		}
		log.Warn().Msg("Redis unreachable - falling back to in-memory conversation store")
	}
	return NewMemoryStore()
}

// MemoryStore keeps conversations in a process-wide map. This is the default
// backend: history lives for the process lifetime only.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[int64][]Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[int64][]Turn),
	}
}

func (ms *MemoryStore) Ensure(_ context.Context, userID int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.conversations[userID]; !exists {
		ms.conversations[userID] = []Turn{}
	}
	return nil
}

func (ms *MemoryStore) Append(_ context.Context, userID int64, turn Turn) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	turns, exists := ms.conversations[userID]
	if !exists {
		return ErrUnknownUser
	}
	ms.conversations[userID] = append(turns, turn)
	return nil
}

func (ms *MemoryStore) Reset(_ context.Context, userID int64) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, existed := ms.conversations[userID]
	delete(ms.conversations, userID)
	return existed, nil
}

func (ms *MemoryStore) Snapshot(_ context.Context, userID int64) ([]Turn, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	turns := ms.conversations[userID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// RedisStore keeps each conversation as a marker key plus a JSON list. The
// marker distinguishes "ensured but empty" from "never seen", which Reset
// needs for its return value.
type RedisStore struct {
	redisService *redis.Service
}

func conversationKey(userID int64) string {
	return fmt.Sprintf("conversation:%d", userID)
}

func turnsKey(userID int64) string {
	return fmt.Sprintf("conversation:%d:turns", userID)
}

func (rs *RedisStore) Ensure(ctx context.Context, userID int64) error {
	return rs.redisService.SetNX(ctx, conversationKey(userID), "1")
}

func (rs *RedisStore) Append(ctx context.Context, userID int64, turn Turn) error {
	exists, err := rs.redisService.Exists(ctx, conversationKey(userID))
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownUser
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	return rs.redisService.PushList(ctx, turnsKey(userID), string(data))
}

func (rs *RedisStore) Reset(ctx context.Context, userID int64) (bool, error) {
	n, err := rs.redisService.Delete(ctx, conversationKey(userID), turnsKey(userID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (rs *RedisStore) Snapshot(ctx context.Context, userID int64) ([]Turn, error) {
	vals, err := rs.redisService.GetList(ctx, turnsKey(userID))
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(vals))
	for _, v := range vals {
		var turn Turn
		if err := json.Unmarshal([]byte(v), &turn); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
