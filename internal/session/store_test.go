package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"freight_admin/internal/models"
)

// newTestStore starts an in-memory miniredis server and returns a store
// connected to it.
func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func testCredential() models.Credential {
	return models.Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Profile: models.Profile{
			UserID:   "42",
			Email:    "ayse@example.com",
			Name:     "Ayşe",
			Surname:  "Yılmaz",
			UserType: models.UserTypeShipper,
		},
	}
}

func TestSetAndGet(t *testing.T) {
	store, _ := newTestStore(t, 0)
	ctx := context.Background()
	sid := NewID()

	if err := store.Set(ctx, sid, testCredential()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sid)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AccessToken != "access-1" {
		t.Fatalf("expected access token 'access-1', got %q", got.AccessToken)
	}
	if got.Profile.UserType != models.UserTypeShipper {
		t.Fatalf("expected shipper profile, got %v", got.Profile.UserType)
	}

	profile, err := store.Profile(ctx, sid)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Surname != "Yılmaz" {
		t.Fatalf("expected surname 'Yılmaz', got %q", profile.Surname)
	}
}

func TestGet_NotFound(t *testing.T) {
	store, _ := newTestStore(t, 0)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}

	_, err = store.Get(context.Background(), "")
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential for empty id, got %v", err)
	}
}

func TestClearRemovesProfile(t *testing.T) {
	store, mr := newTestStore(t, 0)
	ctx := context.Background()
	sid := NewID()

	if err := store.Set(ctx, sid, testCredential()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(ctx, sid); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := store.Get(ctx, sid); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after clear, got %v", err)
	}
	if mr.Exists(profileKey(sid)) {
		t.Fatal("expected profile key to be removed")
	}
}

func TestSetWithoutTTLDoesNotExpire(t *testing.T) {
	store, mr := newTestStore(t, 0)
	ctx := context.Background()
	sid := NewID()

	if err := store.Set(ctx, sid, testCredential()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(365 * 24 * time.Hour)

	if _, err := store.Get(ctx, sid); err != nil {
		t.Fatalf("expected credential to survive, got %v", err)
	}
}

func TestSetRejectsEmptyToken(t *testing.T) {
	store, _ := newTestStore(t, 0)
	cred := testCredential()
	cred.AccessToken = ""

	if err := store.Set(context.Background(), NewID(), cred); err == nil {
		t.Fatal("expected error for empty access token")
	}
}
