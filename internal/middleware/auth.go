package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"freight_admin/internal/gate"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
)

const credentialKey = "credential"

// Navigator turns gate redirects into HTTP answers. Browsers get a redirect;
// XHR/JSON callers get {"redirect": path} so the front-end can navigate.
type Navigator struct {
	c *gin.Context
}

// NewNavigator binds a navigator to the request.
func NewNavigator(c *gin.Context) Navigator {
	return Navigator{c: c}
}

// GoTo implements gate.Navigator.
func (n Navigator) GoTo(path string, replace bool) {
	if WantsJSON(n.c) {
		status := http.StatusNotFound
		if path == gate.LoginPath {
			status = http.StatusUnauthorized
		}
		n.c.AbortWithStatusJSON(status, gin.H{"redirect": path, "replace": replace})
		return
	}
	status := http.StatusFound
	if replace {
		status = http.StatusSeeOther
	}
	n.c.Redirect(status, path)
	n.c.Abort()
}

// WantsJSON reports whether the caller is an API client rather than a page load.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// lookupCredential loads the credential for the request's session. Store
// errors other than "absent" are logged and treated as absent.
func lookupCredential(c *gin.Context, store session.Store) *models.Credential {
	sid := SessionID(c)
	if sid == "" {
		return nil
	}
	cred, err := store.Get(c.Request.Context(), sid)
	if err != nil {
		if !errors.Is(err, session.ErrNoCredential) {
			logrus.WithError(err).Error("credential store lookup failed")
		}
		return nil
	}
	return cred
}

// GatePage runs the session gate for a page navigation. Unauthenticated
// users go to the login page, unknown pages to the dashboard.
func GatePage(registry gate.Registry, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := lookupCredential(c, store)
		g := gate.New(registry)

		decision, err := g.Navigate(c.Request.Context(), c.Request.URL.Path, cred)
		if err != nil {
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("gate navigation discarded")
			c.AbortWithStatus(http.StatusConflict)
			return
		}
		if gate.Follow(NewNavigator(c), decision) {
			return
		}

		c.Set(credentialKey, cred)
		c.Next()
	}
}

// RequireCredential guards API routes: without a credential the caller is
// told to go to the login page.
func RequireCredential(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := lookupCredential(c, store)
		if cred == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Missing or invalid session",
				"redirect": gate.LoginPath,
			})
			return
		}
		c.Set(credentialKey, cred)
		c.Next()
	}
}

// Credential returns the credential attached by GatePage or RequireCredential.
func Credential(c *gin.Context) *models.Credential {
	v, ok := c.Get(credentialKey)
	if !ok {
		return nil
	}
	cred, _ := v.(*models.Credential)
	return cred
}
