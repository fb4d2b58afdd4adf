package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore persists per-session conversation context between turns.
// Load on an unknown session returns a fresh empty context, not an error.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*Context, error)
	Save(ctx context.Context, sessionID string, convo *Context) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps contexts in Redis with a sliding TTL so abandoned
// chats expire on their own.
type RedisSessionStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *RedisSessionStore {
	if client == nil {
		panic("assistant: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if tracer == nil {
		tracer = otel.Tracer("realty.internal.assistant.sessions")
	}
	return &RedisSessionStore{
		redis:  client,
		ttl:    ttl,
		tracer: tracer,
	}
}

// Load fetches the context for a session, returning an empty context when the
// session is unknown or expired.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*Context, error) {
	ctx, span := s.tracer.Start(ctx, "assistant.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return NewContext(), nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("assistant: failed to load session: %w", err)
	}

	var convo Context
	if err := json.Unmarshal(data, &convo); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("assistant: failed to decode session: %w", err)
	}
	return &convo, nil
}

// Save persists the context and refreshes its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, convo *Context) error {
	ctx, span := s.tracer.Start(ctx, "assistant.save_session")
	defer span.End()

	data, err := json.Marshal(convo)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("assistant: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("assistant: failed to persist session: %w", err)
	}
	return nil
}

// Clear removes the session's context entirely.
func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "assistant.clear_session")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("assistant: failed to clear session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("chat_session:%s", id)
}

// MemorySessionStore keeps serialized contexts in process memory. Used when
// no Redis is configured and in tests. Serializing mirrors the Redis store's
// copy semantics so callers never share a live Context.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string][]byte{}}
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*Context, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return NewContext(), nil
	}

	var convo Context
	if err := json.Unmarshal(data, &convo); err != nil {
		return nil, fmt.Errorf("assistant: failed to decode session: %w", err)
	}
	return &convo, nil
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID string, convo *Context) error {
	data, err := json.Marshal(convo)
	if err != nil {
		return fmt.Errorf("assistant: failed to marshal session: %w", err)
	}
	s.mu.Lock()
	s.sessions[sessionID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
