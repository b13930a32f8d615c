package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"freight_admin/internal/activity"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/wizard"
)

// PageController renders the view models of the gated pages.
type PageController struct {
	Pages    gate.StaticRegistry
	Activity activity.Log
	Drafts   Drafts
}

type navItem struct {
	ID     gate.PageID `json:"id"`
	Title  string      `json:"title"`
	Path   string      `json:"path"`
	Active bool        `json:"active"`
}

func (p *PageController) sidebar(active gate.PageID) []navItem {
	items := make([]navItem, 0, len(p.Pages))
	for _, page := range p.Pages {
		items = append(items, navItem{
			ID:     page.ID,
			Title:  page.Title,
			Path:   page.Path(),
			Active: page.ID == active,
		})
	}
	return items
}

func (p *PageController) view(c *gin.Context, id gate.PageID) gin.H {
	page, _ := p.Pages.Lookup(id)
	h := gin.H{
		"page":    page,
		"sidebar": p.sidebar(id),
	}
	if cred := middleware.Credential(c); cred != nil {
		h["user"] = cred.Profile
	}
	return h
}

// Dashboard renders the landing page with the user's recent activity.
func (p *PageController) Dashboard(c *gin.Context) {
	h := p.view(c, gate.PageDashboard)
	h["activities"] = p.recent(c)
	c.JSON(http.StatusOK, h)
}

func (p *PageController) recent(c *gin.Context) any {
	cred := middleware.Credential(c)
	if p.Activity == nil || cred == nil {
		return []any{}
	}
	entries, err := p.Activity.Recent(c.Request.Context(), cred.Profile.UserID, 10)
	if err != nil {
		logrus.WithError(err).Warn("Dashboard: could not load activity")
		return []any{}
	}
	return entries
}

// CreateLoad renders the wizard page with the stored draft.
func (p *PageController) CreateLoad(c *gin.Context) {
	h := p.view(c, gate.PageCreateLoad)
	s := wizard.NewSession()
	if p.Drafts != nil {
		if draft, err := p.Drafts.Load(c.Request.Context(), middleware.SessionID(c)); err == nil {
			s = draft
		} else {
			logrus.WithError(err).Warn("CreateLoad: could not load draft")
		}
	}
	h["wizard"] = wizardView(s)
	c.JSON(http.StatusOK, h)
}

// Page renders a screen whose data is fetched by the front-end through the
// resource API.
func (p *PageController) Page(id gate.PageID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.view(c, id))
	}
}

// Handler returns the handler that renders page id.
func (p *PageController) Handler(id gate.PageID) gin.HandlerFunc {
	switch id {
	case gate.PageDashboard:
		return p.Dashboard
	case gate.PageCreateLoad:
		return p.CreateLoad
	default:
		return p.Page(id)
	}
}

// Resolve serves a path the gate let through by its first segment, the same
// way the gate matched it: /Vehicles and /vehicles/42 render the vehicles
// page.
func (p *PageController) Resolve(c *gin.Context) {
	seg := gate.FirstSegment(c.Request.URL.Path)
	if seg == "" {
		p.Dashboard(c)
		return
	}
	page, ok := p.Pages.Lookup(gate.PageID(seg))
	if !ok {
		NotFound(c)
		return
	}
	p.Handler(page.ID)(c)
}

// NotFound answers paths the gate let through but no handler serves.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Page not found", "redirect": gate.DefaultPath})
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
