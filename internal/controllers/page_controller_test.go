package controllers

import (
	"context"
	"net/http"
	"testing"

	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/wizard"
)

func TestDashboardShowsRecentActivity(t *testing.T) {
	e := newTestEnv(t)
	_ = e.activity.Record(context.Background(), models.Activity{UserID: "u-1", Kind: models.ActivityLoadCreated, Subject: "Cargo"})
	_ = e.activity.Record(context.Background(), models.Activity{UserID: "u-2", Kind: models.ActivityLogin})

	pages := &PageController{Pages: gate.DefaultRegistry, Activity: e.activity, Drafts: e.drafts}
	r := e.router()
	gated := middleware.GatePage(gate.DefaultRegistry, e.sessions)
	r.GET("/dashboard", gated, pages.Dashboard)
	r.GET("/vehicles", gated, pages.Page(gate.PageVehicles))

	w := doJSON(t, r, http.MethodGet, "/dashboard", nil, e.signIn(t, "sid-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	activities := body["activities"].([]any)
	if len(activities) != 1 {
		t.Fatalf("expected only the user's activity, got %v", activities)
	}
	sidebar := body["sidebar"].([]any)
	if len(sidebar) != len(gate.DefaultRegistry) {
		t.Fatalf("expected full sidebar, got %d entries", len(sidebar))
	}
	first := sidebar[0].(map[string]any)
	if first["path"] != "/dashboard" || first["active"] != true {
		t.Fatalf("dashboard entry should be active: %v", first)
	}

	w = doJSON(t, r, http.MethodGet, "/vehicles", nil, e.signIn(t, "sid-1"))
	page := decode(t, w)["page"].(map[string]any)
	if page["title"] != "Vehicles" {
		t.Fatalf("unexpected page: %v", page)
	}
}

func TestCreateLoadPageShowsDraft(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.signIn(t, "sid-1")
	draft := wizard.NewSession()
	draft.SetFields(wizard.LoadFields{Title: "Half done"})
	if err := e.drafts.Save(context.Background(), "sid-1", draft); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pages := &PageController{Pages: gate.DefaultRegistry, Drafts: e.drafts}
	r := e.router()
	r.GET("/create-load", middleware.GatePage(gate.DefaultRegistry, e.sessions), pages.CreateLoad)

	body := decode(t, doJSON(t, r, http.MethodGet, "/create-load", nil, cookie))
	wiz := body["wizard"].(map[string]any)
	if wiz["fields"].(map[string]any)["title"] != "Half done" {
		t.Fatalf("draft not shown: %v", wiz)
	}
	if steps := wiz["steps"].([]any); len(steps) != wizard.StepCount {
		t.Fatalf("expected %d steps, got %d", wizard.StepCount, len(steps))
	}
}
