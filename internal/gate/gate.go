package gate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"freight_admin/internal/logger"
	"freight_admin/internal/models"
)

// Decision is the outcome of evaluating a navigation.
type Decision int

const (
	Idle Decision = iota
	Pending
	Authorized
	UnknownPage
	Unauthenticated
)

func (d Decision) String() string {
	switch d {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Authorized:
		return "authorized"
	case UnknownPage:
		return "unknown_page"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// MarshalText lets decisions appear by name in JSON.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Redirect returns where the router must send the user for d.
func (d Decision) Redirect() (string, bool) {
	switch d {
	case Unauthenticated:
		return LoginPath, true
	case UnknownPage:
		return DefaultPath, true
	default:
		return "", false
	}
}

// ErrSuperseded is returned by Navigate when a newer navigation started
// before the registry lookup finished. The stale result is discarded.
var ErrSuperseded = errors.New("gate: navigation superseded")

// Navigator performs redirects.
type Navigator interface {
	GoTo(path string, replace bool)
}

// Gate decides, per navigation, whether the current user may view a path.
type Gate struct {
	registry Registry
	log      *logrus.Entry

	mu       sync.Mutex
	seq      uint64
	path     string
	decision Decision
}

// New creates a gate backed by registry.
func New(registry Registry) *Gate {
	return &Gate{
		registry: registry,
		log:      logger.Component("gate"),
	}
}

// Decision reports the path of the latest navigation and its decision.
func (g *Gate) Decision() (string, Decision) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.path, g.decision
}

// Navigate evaluates path for cred. While the registry lookup runs the gate
// reports Pending. If another Navigate call starts in the meantime this call
// returns ErrSuperseded and its result never becomes visible.
func (g *Gate) Navigate(ctx context.Context, path string, cred *models.Credential) (Decision, error) {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.path = path
	g.decision = Pending
	g.mu.Unlock()

	d := g.evaluate(ctx, path, cred)

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		return d, ErrSuperseded
	}
	g.decision = d
	return d, nil
}

// Follow applies the redirect for d, if any, through nav.
func Follow(nav Navigator, d Decision) bool {
	target, ok := d.Redirect()
	if ok {
		nav.GoTo(target, true)
	}
	return ok
}

func (g *Gate) evaluate(ctx context.Context, path string, cred *models.Credential) Decision {
	if cred == nil || cred.AccessToken == "" {
		return Unauthenticated
	}
	if path == RootPath || path == "" || path == DefaultPath {
		return Authorized
	}
	page := FirstSegment(path)
	if page == "" {
		return Authorized
	}

	known, err := g.lookup(ctx)
	if err != nil {
		g.log.WithError(err).WithField("path", path).Warn("page registry lookup failed, allowing navigation")
		return Authorized
	}
	if _, ok := known[PageID(page)]; !ok {
		return UnknownPage
	}
	return Authorized
}

func (g *Gate) lookup(ctx context.Context) (known map[PageID]struct{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("registry panicked: %v", r)
		}
	}()
	if g.registry == nil {
		return nil, errors.New("no page registry configured")
	}
	return g.registry.ListKnownPages(ctx)
}
