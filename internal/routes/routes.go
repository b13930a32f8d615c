package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"freight_admin/internal/activity"
	"freight_admin/internal/clients"
	"freight_admin/internal/controllers"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
	"freight_admin/internal/wizard"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Tokens   *middleware.SessionTokens
	Sessions session.Store
	Drafts   controllers.Drafts
	Activity activity.Log
	Pages    gate.StaticRegistry
	Identity controllers.Authenticator
	Loads    wizard.Submitter

	LoadResource    controllers.RemoteResource[models.Load]
	UserResource    controllers.RemoteResource[models.User]
	VehicleResource controllers.RemoteResource[models.Vehicle]
}

// WithClients fills the service-backed fields of d from the two REST
// clients.
func (d Deps) WithClients(identity *clients.IdentityClient, loads *clients.LoadClient) Deps {
	users, vehicles := clients.IdentityResources(identity)
	d.Identity = identity
	d.Loads = loads
	d.LoadResource = loads.Loads
	d.UserResource = users
	d.VehicleResource = vehicles
	return d
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.LoadSession(d.Tokens))

	r.GET("/healthz", controllers.Health)

	AuthRoutes(r, d)
	PageRoutes(r, d)
	WizardRoutes(r, d)
	ResourceRoutes(r, d)

	return r
}
