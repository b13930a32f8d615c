package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freight_admin/internal/activity"
	"freight_admin/internal/clients"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
)

// RemoteResource is a list screen's backing service, see clients.Resource.
type RemoteResource[T any] interface {
	Name() string
	List(ctx context.Context, token string, q clients.ListQuery) ([]T, error)
	Create(ctx context.Context, token string, item T) (*T, error)
	Update(ctx context.Context, token string, item T) (*T, error)
	Delete(ctx context.Context, token, id, userID string) error
}

// ResourceController proxies one list screen to its service with the
// signed-in user's bearer token.
type ResourceController[T any] struct {
	Resource RemoteResource[T]
	Sessions session.Store
	Drafts   draftDiscarder
	Activity activity.Log
	// Filters maps accepted query parameters to the service's filter names.
	// Anything else is dropped.
	Filters map[string]string
	// SetID, when set, stamps the :id path parameter onto an updated item.
	SetID func(item *T, id string)
	// Row, when set, shapes each listed item for the screen.
	Row func(T) any
}

// SetLoadID makes the path id authoritative on load updates.
func SetLoadID(l *models.Load, id string) { l.ID = id }

// SetUserID makes the path id authoritative on user updates.
func SetUserID(u *models.User, id string) { u.ID = id }

// SetVehicleID makes the path id authoritative on vehicle updates.
func SetVehicleID(v *models.Vehicle, id string) { v.ID = id }

// LoadRow adds the status label shown on the loads screen.
func LoadRow(l models.Load) any {
	return struct {
		models.Load
		DisplayStatus models.LoadStatus `json:"displayStatus"`
	}{l, l.DisplayStatus()}
}

// UserRow adds the display name shown on the drivers screen.
func UserRow(u models.User) any {
	return struct {
		models.User
		FullName string `json:"fullName"`
	}{u, u.FullName()}
}

func (r *ResourceController[T]) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, clients.ErrUnsupported) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": r.Resource.Name() + " does not support this operation"})
		return
	}
	upstreamFailed(c, err, r.Sessions, r.Drafts, message)
}

// List returns one page of items.
func (r *ResourceController[T]) List(c *gin.Context) {
	cred := middleware.Credential(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	q := clients.ListQuery{
		Page:           page,
		PageSize:       pageSize,
		IncludeDeleted: c.Query("includeDeleted") == "true",
		Filters:        map[string]string{},
	}
	for param, upstream := range r.Filters {
		if v := c.Query(param); v != "" {
			q.Filters[upstream] = v
		}
	}

	items, err := r.Resource.List(c.Request.Context(), cred.AccessToken, q)
	if err != nil {
		r.fail(c, err, "Failed to fetch "+r.Resource.Name())
		return
	}
	var rows any = items
	if r.Row != nil {
		shaped := make([]any, 0, len(items))
		for _, item := range items {
			shaped = append(shaped, r.Row(item))
		}
		rows = shaped
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "page": q.Page, "pageSize": q.PageSize})
}

// Create adds an item.
func (r *ResourceController[T]) Create(c *gin.Context) {
	cred := middleware.Credential(c)
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := r.Resource.Create(c.Request.Context(), cred.AccessToken, item)
	if err != nil {
		r.fail(c, err, "Failed to create "+r.Resource.Name())
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Update replaces the item named by :id.
func (r *ResourceController[T]) Update(c *gin.Context) {
	cred := middleware.Credential(c)
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if r.SetID != nil {
		r.SetID(&item, c.Param("id"))
	}
	out, err := r.Resource.Update(c.Request.Context(), cred.AccessToken, item)
	if err != nil {
		r.fail(c, err, "Failed to update "+r.Resource.Name())
		return
	}
	record(c.Request.Context(), r.Activity, cred.Profile.UserID, models.ActivityUpdated,
		r.Resource.Name()+"/"+c.Param("id"), "")
	c.JSON(http.StatusOK, out)
}

// Delete removes the item named by :id.
func (r *ResourceController[T]) Delete(c *gin.Context) {
	cred := middleware.Credential(c)
	id := c.Param("id")
	if err := r.Resource.Delete(c.Request.Context(), cred.AccessToken, id, cred.Profile.UserID); err != nil {
		r.fail(c, err, "Failed to delete "+r.Resource.Name())
		return
	}
	record(c.Request.Context(), r.Activity, cred.Profile.UserID, models.ActivityDeleted,
		r.Resource.Name()+"/"+id, "")
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
