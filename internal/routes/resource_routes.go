package routes

import (
	"github.com/gin-gonic/gin"

	"freight_admin/internal/clients"
	"freight_admin/internal/controllers"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
)

type resourceHandlers interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func mountResource(api *gin.RouterGroup, path string, h resourceHandlers) {
	g := api.Group(path)
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func ResourceRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	api.Use(middleware.RequireCredential(d.Sessions))

	mountResource(api, "/loads", &controllers.ResourceController[models.Load]{
		Resource: d.LoadResource,
		Sessions: d.Sessions,
		Drafts:   d.Drafts,
		Activity: d.Activity,
		Filters:  clients.LoadFilters,
		SetID:    controllers.SetLoadID,
		Row:      controllers.LoadRow,
	})
	mountResource(api, "/users", &controllers.ResourceController[models.User]{
		Resource: d.UserResource,
		Sessions: d.Sessions,
		Drafts:   d.Drafts,
		Activity: d.Activity,
		Filters:  clients.UserFilters,
		SetID:    controllers.SetUserID,
		Row:      controllers.UserRow,
	})
	mountResource(api, "/vehicles", &controllers.ResourceController[models.Vehicle]{
		Resource: d.VehicleResource,
		Sessions: d.Sessions,
		Drafts:   d.Drafts,
		Activity: d.Activity,
		Filters:  clients.VehicleFilters,
		SetID:    controllers.SetVehicleID,
	})
}
