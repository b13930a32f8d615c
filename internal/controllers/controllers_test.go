package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
	"freight_admin/internal/wizard"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []models.Activity
}

func (f *fakeActivity) Record(_ context.Context, a models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, a)
	return nil
}

func (f *fakeActivity) Recent(_ context.Context, userID string, limit int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Activity
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeActivity) kinds() []models.ActivityKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ActivityKind, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Kind)
	}
	return out
}

type fakeLoads struct {
	result  *models.SubmitResult
	err     error
	calls   int
	token   string
	payload models.LoadPayload
}

func (f *fakeLoads) CreateLoad(_ context.Context, token string, p models.LoadPayload) (*models.SubmitResult, error) {
	f.calls++
	f.token = token
	f.payload = p
	return f.result, f.err
}

// testEnv wires the real Redis-backed stores to a miniredis instance.
type testEnv struct {
	mr       *miniredis.Miniredis
	tokens   *middleware.SessionTokens
	sessions *session.RedisStore
	drafts   *wizard.DraftStore
	activity *fakeActivity
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return &testEnv{
		mr:       mr,
		tokens:   middleware.NewSessionTokens("test-secret", 0, false),
		sessions: session.NewRedisStore(rdb, 0),
		drafts:   wizard.NewDraftStore(rdb, 0),
		activity: &fakeActivity{},
	}
}

func (e *testEnv) router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.LoadSession(e.tokens))
	return r
}

// signIn stores a credential for sid and returns the matching cookie.
func (e *testEnv) signIn(t *testing.T, sid string) *http.Cookie {
	t.Helper()
	cred := models.Credential{
		AccessToken: "access-" + sid,
		Profile:     models.Profile{UserID: "u-1", Email: "m@example.com", UserType: models.UserTypeShipper},
	}
	if err := e.sessions.Set(context.Background(), sid, cred); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, err := e.tokens.Generate(sid)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: raw}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}
