package clients

import (
	"context"
	"net/http"

	"freight_admin/internal/models"
)

// LoadClient talks to the Load service.
type LoadClient struct {
	*Client
	Loads *Resource[models.Load]
}

// NewLoadClient creates a client for the Load service.
func NewLoadClient(baseURL string, opts Options) *LoadClient {
	c := NewClient(baseURL, opts)
	return &LoadClient{
		Client: c,
		Loads: NewResource[models.Load]("loads", c, Endpoints{
			List:           Endpoint{http.MethodGet, "/api/load/list"},
			Update:         Endpoint{http.MethodPut, "/api/load/update"},
			Delete:         Endpoint{http.MethodDelete, "/api/load/delete"},
			DeleteWithBody: true,
		}),
	}
}

// LoadFilters maps the loads screen's search fields to the query
// parameters of GET /api/load/list.
var LoadFilters = map[string]string{
	"title":     "Title",
	"city":      "City",
	"district":  "District",
	"minWeight": "MinWeight",
	"maxWeight": "MaxWeight",
	"minVolume": "MinVolume",
	"maxVolume": "MaxVolume",
	"startDate": "StartDate",
	"endDate":   "EndDate",
}

// VehicleFilters are the vehicles screen's search fields. The Identity
// service takes them under the same names in the list body.
var VehicleFilters = map[string]string{
	"plateNumber": "plateNumber",
	"vehicleType": "vehicleType",
	"status":      "status",
}

// UserFilters are the drivers screen's search fields.
var UserFilters = map[string]string{
	"name":             "name",
	"email":            "email",
	"userType":         "userType",
	"isEmailConfirmed": "isEmailConfirmed",
}

// CreateLoad submits a load built by the creation wizard.
func (c *LoadClient) CreateLoad(ctx context.Context, token string, payload models.LoadPayload) (*models.SubmitResult, error) {
	var out models.SubmitResult
	err := c.do(ctx, request{
		method:       http.MethodPost,
		path:         "/api/load/create",
		token:        token,
		body:         payload,
		decodeErrors: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IdentityResources returns the list-screen resources of the Identity service.
func IdentityResources(c *IdentityClient) (*Resource[models.User], *Resource[models.Vehicle]) {
	users := NewResource[models.User]("users", c.Client, Endpoints{
		List:   Endpoint{http.MethodPost, "/api/user/list"},
		Update: Endpoint{http.MethodPut, "/api/user/update"},
		Delete: Endpoint{http.MethodPost, "/api/user/soft-delete/{id}"},
	})
	vehicles := NewResource[models.Vehicle]("vehicles", c.Client, Endpoints{
		List:   Endpoint{http.MethodPost, "/api/vehicle/list"},
		Update: Endpoint{http.MethodPut, "/api/vehicle/update"},
		Delete: Endpoint{http.MethodPost, "/api/vehicle/soft-delete/{id}"},
	})
	return users, vehicles
}
