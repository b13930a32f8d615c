package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DraftStore keeps one wizard session per browser session in Redis.
type DraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDraftStore creates a draft store; ttl bounds abandoned drafts.
func NewDraftStore(rdb *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(sessionID string) string {
	return fmt.Sprintf("wizard:%s", sessionID)
}

// Load returns the stored draft, or a fresh session when none exists.
func (d *DraftStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := d.rdb.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewSession(), nil
		}
		return nil, fmt.Errorf("load wizard draft: %w", err)
	}
	s := NewSession()
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode wizard draft: %w", err)
	}
	return s, nil
}

// Save stores the draft and refreshes its TTL.
func (d *DraftStore) Save(ctx context.Context, sessionID string, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode wizard draft: %w", err)
	}
	if err := d.rdb.Set(ctx, draftKey(sessionID), raw, d.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard draft: %w", err)
	}
	return nil
}

// Discard drops the draft.
func (d *DraftStore) Discard(ctx context.Context, sessionID string) error {
	if err := d.rdb.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("discard wizard draft: %w", err)
	}
	return nil
}
