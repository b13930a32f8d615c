package routes

import (
	"github.com/gin-gonic/gin"

	"freight_admin/internal/controllers"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
)

// PageRoutes serves every registered page behind the session gate. Other
// paths still pass through the gate: unknown pages land on the dashboard and
// known ones in another case or with a sub-path render their page.
func PageRoutes(r *gin.Engine, d Deps) {
	pages := &controllers.PageController{
		Pages:    d.Pages,
		Activity: d.Activity,
		Drafts:   d.Drafts,
	}
	gated := middleware.GatePage(d.Pages, d.Sessions)

	r.GET(gate.RootPath, gated, pages.Dashboard)
	for _, p := range d.Pages {
		r.GET(p.Path(), gated, pages.Handler(p.ID))
	}

	r.NoRoute(gated, pages.Resolve)
}
