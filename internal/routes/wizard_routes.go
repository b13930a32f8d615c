package routes

import (
	"github.com/gin-gonic/gin"

	"freight_admin/internal/controllers"
	"freight_admin/internal/middleware"
)

func WizardRoutes(r *gin.Engine, d Deps) {
	w := &controllers.WizardController{
		Drafts:   d.Drafts,
		Loads:    d.Loads,
		Sessions: d.Sessions,
		Activity: d.Activity,
	}

	wiz := r.Group("/api/create-load")
	wiz.Use(middleware.RequireCredential(d.Sessions))
	{
		wiz.GET("", w.State)
		wiz.DELETE("", w.Cancel)
		wiz.PATCH("/fields", w.UpdateFields)
		wiz.POST("/next", w.Next)
		wiz.POST("/previous", w.Previous)
		wiz.POST("/stops", w.AddStop)
		wiz.PUT("/stops/:index", w.UpdateStop)
		wiz.DELETE("/stops/:index", w.RemoveStop)
		wiz.POST("/stops/:index/move/:direction", w.MoveStop)
		wiz.POST("/submit", w.Submit)
	}
}
