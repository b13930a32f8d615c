package gate

import (
	"context"
	"strings"
)

// PageID names one top-level screen of the dashboard.
type PageID string

const (
	PageDashboard     PageID = "dashboard"
	PageVehicles      PageID = "vehicles"
	PageDrivers       PageID = "drivers"
	PageLoads         PageID = "loads"
	PageBookings      PageID = "bookings"
	PageCreateLoad    PageID = "create-load"
	PageInvoices      PageID = "invoices"
	PageCommunity     PageID = "community"
	PageNotifications PageID = "notifications"
	PageSettings      PageID = "settings"
)

// Well-known paths.
const (
	RootPath    = "/"
	LoginPath   = "/login"
	DefaultPath = "/dashboard"
)

// Page is a registry entry.
type Page struct {
	ID    PageID `json:"id"`
	Title string `json:"title"`
}

// Path is the URL the page is served at.
func (p Page) Path() string {
	return "/" + string(p.ID)
}

// Registry is the source of known page identifiers. Lookups may block and
// may fail.
type Registry interface {
	ListKnownPages(ctx context.Context) (map[PageID]struct{}, error)
}

// StaticRegistry is a registry declared at compile time.
type StaticRegistry []Page

// DefaultRegistry lists every screen the dashboard serves.
var DefaultRegistry = StaticRegistry{
	{ID: PageDashboard, Title: "Dashboard"},
	{ID: PageVehicles, Title: "Vehicles"},
	{ID: PageDrivers, Title: "Drivers"},
	{ID: PageLoads, Title: "Loads"},
	{ID: PageBookings, Title: "Bookings"},
	{ID: PageCreateLoad, Title: "Create Load"},
	{ID: PageInvoices, Title: "Invoices"},
	{ID: PageCommunity, Title: "Community"},
	{ID: PageNotifications, Title: "Notifications"},
	{ID: PageSettings, Title: "Settings"},
}

// ListKnownPages implements Registry.
func (r StaticRegistry) ListKnownPages(context.Context) (map[PageID]struct{}, error) {
	out := make(map[PageID]struct{}, len(r))
	for _, p := range r {
		out[p.ID] = struct{}{}
	}
	return out, nil
}

// Lookup returns the page registered for id.
func (r StaticRegistry) Lookup(id PageID) (Page, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(ctx context.Context) (map[PageID]struct{}, error)

// ListKnownPages implements Registry.
func (f RegistryFunc) ListKnownPages(ctx context.Context) (map[PageID]struct{}, error) {
	return f(ctx)
}

// FirstSegment returns the lower-cased first non-empty segment of path.
func FirstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return strings.ToLower(seg)
		}
	}
	return ""
}
