package gate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"freight_admin/internal/models"
)

var validCred = &models.Credential{AccessToken: "token"}

type recordingNavigator struct {
	path    string
	replace bool
	calls   int
}

func (n *recordingNavigator) GoTo(path string, replace bool) {
	n.path = path
	n.replace = replace
	n.calls++
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		path string
		cred *models.Credential
		want Decision
	}{
		{"no credential on known page", "/vehicles", nil, Unauthenticated},
		{"no credential on root", "/", nil, Unauthenticated},
		{"no credential on unknown page", "/does-not-exist", nil, Unauthenticated},
		{"empty token counts as absent", "/vehicles", &models.Credential{}, Unauthenticated},
		{"root", "/", validCred, Authorized},
		{"default landing", "/dashboard", validCred, Authorized},
		{"registered page", "/vehicles", validCred, Authorized},
		{"registered page with sub path", "/loads/123/edit", validCred, Authorized},
		{"case insensitive segment", "/Drivers", validCred, Authorized},
		{"trailing slash", "/bookings/", validCred, Authorized},
		{"unknown page", "/reports", validCred, UnknownPage},
		{"unknown page nested", "/reports/vehicles", validCred, UnknownPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultRegistry)
			got, err := g.Navigate(context.Background(), tt.path, tt.cred)
			if err != nil {
				t.Fatalf("Navigate: %v", err)
			}
			if got != tt.want {
				t.Errorf("Navigate(%q) = %s, want %s", tt.path, got, tt.want)
			}
			path, current := g.Decision()
			if path != tt.path || current != tt.want {
				t.Errorf("Decision() = (%q, %s), want (%q, %s)", path, current, tt.path, tt.want)
			}
		})
	}
}

func TestUnauthenticatedIgnoresRegistry(t *testing.T) {
	var calls int32
	reg := RegistryFunc(func(context.Context) (map[PageID]struct{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[PageID]struct{}{"anything": {}}, nil
	})
	g := New(reg)

	for _, p := range []string{"/", "/anything", "/dashboard", "/x/y"} {
		got, _ := g.Navigate(context.Background(), p, nil)
		if got != Unauthenticated {
			t.Errorf("Navigate(%q) = %s, want unauthenticated", p, got)
		}
	}
	if calls != 0 {
		t.Errorf("expected no registry lookups, got %d", calls)
	}
}

func TestNavigateIsIdempotent(t *testing.T) {
	g := New(DefaultRegistry)
	for _, p := range []string{"/", "/vehicles", "/reports"} {
		first, _ := g.Navigate(context.Background(), p, validCred)
		second, _ := g.Navigate(context.Background(), p, validCred)
		if first != second {
			t.Errorf("Navigate(%q) not idempotent: %s then %s", p, first, second)
		}
	}
}

func TestLookupFailureFailsOpen(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		reg := RegistryFunc(func(context.Context) (map[PageID]struct{}, error) {
			return nil, errors.New("registry unavailable")
		})
		got, err := New(reg).Navigate(context.Background(), "/reports", validCred)
		if err != nil {
			t.Fatalf("Navigate: %v", err)
		}
		if got != Authorized {
			t.Errorf("got %s, want authorized", got)
		}
	})

	t.Run("panic", func(t *testing.T) {
		reg := RegistryFunc(func(context.Context) (map[PageID]struct{}, error) {
			panic("boom")
		})
		got, err := New(reg).Navigate(context.Background(), "/reports", validCred)
		if err != nil {
			t.Fatalf("Navigate: %v", err)
		}
		if got != Authorized {
			t.Errorf("got %s, want authorized", got)
		}
	})

	t.Run("nil registry", func(t *testing.T) {
		got, _ := New(nil).Navigate(context.Background(), "/reports", validCred)
		if got != Authorized {
			t.Errorf("got %s, want authorized", got)
		}
	})
}

func TestPendingAndSupersede(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	reg := RegistryFunc(func(ctx context.Context) (map[PageID]struct{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
		}
		return DefaultRegistry.ListKnownPages(ctx)
	})
	g := New(reg)

	type result struct {
		d   Decision
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := g.Navigate(context.Background(), "/vehicles", validCred)
		done <- result{d, err}
	}()

	<-entered
	if path, d := g.Decision(); path != "/vehicles" || d != Pending {
		t.Fatalf("Decision() during lookup = (%q, %s), want (/vehicles, pending)", path, d)
	}

	latest, err := g.Navigate(context.Background(), "/reports", validCred)
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if latest != UnknownPage {
		t.Fatalf("latest navigation = %s, want unknown_page", latest)
	}

	close(release)
	stale := <-done
	if !errors.Is(stale.err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded for stale navigation, got %v", stale.err)
	}

	path, d := g.Decision()
	if path != "/reports" || d != UnknownPage {
		t.Fatalf("Decision() = (%q, %s), want (/reports, unknown_page)", path, d)
	}
}

func TestFollow(t *testing.T) {
	tests := []struct {
		decision Decision
		wantPath string
		redirect bool
	}{
		{Unauthenticated, LoginPath, true},
		{UnknownPage, DefaultPath, true},
		{Authorized, "", false},
		{Pending, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.decision.String(), func(t *testing.T) {
			nav := &recordingNavigator{}
			if got := Follow(nav, tt.decision); got != tt.redirect {
				t.Fatalf("Follow() = %v, want %v", got, tt.redirect)
			}
			if nav.path != tt.wantPath {
				t.Errorf("navigated to %q, want %q", nav.path, tt.wantPath)
			}
			if tt.redirect && !nav.replace {
				t.Error("expected replace navigation")
			}
		})
	}
}

func TestFirstSegment(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"/":               "",
		"//":              "",
		"/Vehicles":       "vehicles",
		"/loads/1/edit":   "loads",
		"create-load/":    "create-load",
	}
	for in, want := range cases {
		if got := FirstSegment(in); got != want {
			t.Errorf("FirstSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
