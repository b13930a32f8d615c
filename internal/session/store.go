package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"freight_admin/internal/models"
)

// ErrNoCredential is returned when the browser session holds no credential.
var ErrNoCredential = errors.New("no credential stored for session")

// Store is the credential store handed to the gate and the controllers.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.Credential, error)
	Set(ctx context.Context, sessionID string, cred models.Credential) error
	Clear(ctx context.Context, sessionID string) error
}

// NewID returns a fresh browser session identifier.
func NewID() string {
	return uuid.NewString()
}

// RedisStore keeps credentials in Redis under session:<id>:credential, with
// the profile cached separately under session:<id>:profile.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration // 0 keeps keys until cleared
}

// NewRedisStore creates a credential store on top of an existing client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func credentialKey(sessionID string) string {
	return fmt.Sprintf("session:%s:credential", sessionID)
}

func profileKey(sessionID string) string {
	return fmt.Sprintf("session:%s:profile", sessionID)
}

// Get returns the stored credential or ErrNoCredential.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Credential, error) {
	if sessionID == "" {
		return nil, ErrNoCredential
	}
	raw, err := s.rdb.Get(ctx, credentialKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	var cred models.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	if cred.AccessToken == "" {
		return nil, ErrNoCredential
	}
	return &cred, nil
}

// Profile returns the cached profile of the signed-in user.
func (s *RedisStore) Profile(ctx context.Context, sessionID string) (*models.Profile, error) {
	raw, err := s.rdb.Get(ctx, profileKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Set stores the credential and its profile atomically.
func (s *RedisStore) Set(ctx context.Context, sessionID string, cred models.Credential) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}
	if cred.AccessToken == "" {
		return errors.New("access token is required")
	}
	credRaw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	profileRaw, err := json.Marshal(cred.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, credentialKey(sessionID), credRaw, s.ttl)
	pipe.Set(ctx, profileKey(sessionID), profileRaw, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Clear removes the credential and the cached profile.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, credentialKey(sessionID), profileKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
