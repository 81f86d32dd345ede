package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no valid session")

// Session is the authenticated caller's identity and active workspace.
type Session struct {
	UserID int64 `json:"user_id"`
	TeamID int64 `json:"team_id"`
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Create(ctx context.Context, s Session, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

// redisStore keeps sessions in redis so they survive restarts and are shared
// across instances. Redis being down fails closed: no session resolves.
type redisStore struct{ client redis.UniversalClient }

func NewRedisStore(client redis.UniversalClient) SessionStore {
	return &redisStore{client: client}
}

func (r *redisStore) Create(ctx context.Context, s Session, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+token, b, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (r *redisStore) Get(ctx context.Context, token string) (*Session, error) {
	b, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *redisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// memoryStore backs sessions for single-instance dev setups and tests when
// redis is disabled in config.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	session Session
	expires time.Time
}

func NewMemoryStore() SessionStore {
	return &memoryStore{sessions: make(map[string]memorySession)}
}

func (m *memoryStore) Create(_ context.Context, s Session, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = memorySession{session: s, expires: time.Now().Add(ttl)}
	m.mu.Unlock()
	return token, nil
}

func (m *memoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	ms, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || time.Now().After(ms.expires) {
		return nil, ErrNoSession
	}
	s := ms.session
	return &s, nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}
