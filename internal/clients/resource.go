package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Endpoint is one REST call. Path may contain an {id} placeholder.
type Endpoint struct {
	Method string
	Path   string
}

func (e Endpoint) defined() bool { return e.Path != "" }

func (e Endpoint) withID(id string) string {
	return strings.ReplaceAll(e.Path, "{id}", url.PathEscape(id))
}

// Endpoints describes how a resource maps onto its service.
type Endpoints struct {
	List   Endpoint
	Create Endpoint
	Update Endpoint
	Delete Endpoint
	// DeleteWithBody sends {id, userId} as the body instead of using {id}.
	DeleteWithBody bool
}

// ListQuery is the paging and filter input of the list screens.
type ListQuery struct {
	Page           int
	PageSize       int
	IncludeDeleted bool
	Filters        map[string]string
}

func (q ListQuery) normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	return q
}

// Resource is the list/create/update/delete client shared by the list screens.
type Resource[T any] struct {
	name      string
	client    *Client
	endpoints Endpoints
}

// NewResource binds a resource to a service client.
func NewResource[T any](name string, client *Client, endpoints Endpoints) *Resource[T] {
	return &Resource[T]{name: name, client: client, endpoints: endpoints}
}

// Name identifies the resource in logs and the activity feed.
func (r *Resource[T]) Name() string { return r.name }

// List fetches one page. GET endpoints receive the query string used by the
// Load service; POST endpoints receive the JSON body used by the Identity
// service.
func (r *Resource[T]) List(ctx context.Context, token string, q ListQuery) ([]T, error) {
	ep := r.endpoints.List
	if !ep.defined() {
		return nil, ErrUnsupported
	}
	q = q.normalized()

	req := request{method: ep.Method, path: ep.Path, token: token}
	if ep.Method == http.MethodGet {
		values := url.Values{}
		values.Set("PageNumber", strconv.Itoa(q.Page))
		values.Set("PageSize", strconv.Itoa(q.PageSize))
		for k, v := range q.Filters {
			if v != "" {
				values.Set(k, v)
			}
		}
		req.query = values
	} else {
		body := map[string]any{
			"page":           q.Page,
			"pageSize":       q.PageSize,
			"includeDeleted": q.IncludeDeleted,
		}
		for k, v := range q.Filters {
			if v != "" {
				body[k] = v
			}
		}
		req.body = body
	}

	var out []T
	if err := r.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create posts a new item.
func (r *Resource[T]) Create(ctx context.Context, token string, item T) (*T, error) {
	return r.send(ctx, r.endpoints.Create, token, item)
}

// Update replaces an item.
func (r *Resource[T]) Update(ctx context.Context, token string, item T) (*T, error) {
	return r.send(ctx, r.endpoints.Update, token, item)
}

// Delete removes (or soft-deletes) the item with id on behalf of userID.
func (r *Resource[T]) Delete(ctx context.Context, token, id, userID string) error {
	ep := r.endpoints.Delete
	if !ep.defined() {
		return ErrUnsupported
	}
	req := request{method: ep.Method, path: ep.withID(id), token: token}
	if r.endpoints.DeleteWithBody {
		req.body = map[string]string{"id": id, "userId": userID}
	}
	return r.client.do(ctx, req, nil)
}

func (r *Resource[T]) send(ctx context.Context, ep Endpoint, token string, item T) (*T, error) {
	if !ep.defined() {
		return nil, ErrUnsupported
	}
	var out T
	if err := r.client.do(ctx, request{method: ep.Method, path: ep.Path, token: token, body: item}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
