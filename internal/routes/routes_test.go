package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"freight_admin/internal/clients"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
	"freight_admin/internal/wizard"
)

type testServer struct {
	router   *gin.Engine
	tokens   *middleware.SessionTokens
	sessions *session.RedisStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	upstream := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(upstream.Close)

	ts := &testServer{
		tokens:   middleware.NewSessionTokens("secret", 0, false),
		sessions: session.NewRedisStore(rdb, 0),
	}
	d := Deps{
		Tokens:   ts.tokens,
		Sessions: ts.sessions,
		Drafts:   wizard.NewDraftStore(rdb, 0),
		Pages:    gate.DefaultRegistry,
	}.WithClients(
		clients.NewIdentityClient(upstream.URL, clients.Options{}),
		clients.NewLoadClient(upstream.URL, clients.Options{}),
	)
	ts.router = SetupRouter(d)
	return ts
}

func newTestRouter(t *testing.T) *gin.Engine {
	return newTestServer(t).router
}

func TestRouterWiring(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		accept   string
		status   int
		location string
	}{
		{"health", http.MethodGet, "/healthz", "", http.StatusOK, ""},
		{"login page is open", http.MethodGet, "/login", "text/html", http.StatusOK, ""},
		{"root is gated", http.MethodGet, "/", "text/html", http.StatusSeeOther, "/login"},
		{"registered page is gated", http.MethodGet, "/create-load", "text/html", http.StatusSeeOther, "/login"},
		{"unknown page is gated", http.MethodGet, "/nowhere", "text/html", http.StatusSeeOther, "/login"},
		{"wizard api needs a session", http.MethodGet, "/api/create-load", "", http.StatusUnauthorized, ""},
		{"resource api needs a session", http.MethodGet, "/api/loads", "", http.StatusUnauthorized, ""},
		{"gate api is open", http.MethodGet, "/api/gate?path=/loads", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d %s", tt.status, w.Code, w.Body.String())
			}
			if tt.location != "" && w.Header().Get("Location") != tt.location {
				t.Fatalf("expected Location %q, got %q", tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestPagesResolveLikeTheGate(t *testing.T) {
	ts := newTestServer(t)
	cred := models.Credential{AccessToken: "acc", Profile: models.Profile{UserID: "u-1"}}
	if err := ts.sessions.Set(context.Background(), "sid-1", cred); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, err := ts.tokens.Generate("sid-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cookie := &http.Cookie{Name: middleware.SessionCookie, Value: raw}

	tests := []struct {
		name     string
		path     string
		status   int
		location string
		title    string
	}{
		{"exact page", "/vehicles", http.StatusOK, "", "Vehicles"},
		{"other case", "/Vehicles", http.StatusOK, "", "Vehicles"},
		{"sub-path", "/vehicles/42", http.StatusOK, "", "Vehicles"},
		{"create load sub-path", "/CREATE-LOAD/step", http.StatusOK, "", "Create Load"},
		{"unknown page", "/nowhere", http.StatusSeeOther, "/dashboard", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept", "text/html")
			req.AddCookie(cookie)
			w := httptest.NewRecorder()
			ts.router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d %s", tt.status, w.Code, w.Body.String())
			}
			if tt.location != "" && w.Header().Get("Location") != tt.location {
				t.Fatalf("expected Location %q, got %q", tt.location, w.Header().Get("Location"))
			}
			if tt.title == "" {
				return
			}
			var body struct {
				Page gate.Page `json:"page"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Page.Title != tt.title {
				t.Fatalf("expected page %q, got %+v", tt.title, body.Page)
			}
		})
	}
}
