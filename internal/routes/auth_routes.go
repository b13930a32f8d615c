package routes

import (
	"github.com/gin-gonic/gin"

	"freight_admin/internal/controllers"
	"freight_admin/internal/middleware"
)

func AuthRoutes(r *gin.Engine, d Deps) {
	auth := &controllers.AuthController{
		Identity: d.Identity,
		Sessions: d.Sessions,
		Drafts:   d.Drafts,
		Tokens:   d.Tokens,
		Activity: d.Activity,
		Registry: d.Pages,
	}

	r.GET("/login", auth.LoginPage)
	r.POST("/login", auth.Login)
	r.POST("/logout", auth.Logout)
	r.POST("/register", auth.Register)
	r.POST("/verify", auth.Verify)
	r.POST("/verification-code", auth.SendVerificationCode)

	api := r.Group("/api")
	{
		api.GET("/gate", auth.Decision)
		api.GET("/session", middleware.RequireCredential(d.Sessions), auth.Me)
	}
}
