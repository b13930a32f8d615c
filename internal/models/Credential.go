package models

// UserType mirrors the role enum returned by the Identity service.
type UserType int

const (
	UserTypeAdmin UserType = iota
	UserTypeShipper
	UserTypeCarrier
	UserTypeDriver
)

func (t UserType) String() string {
	switch t {
	case UserTypeAdmin:
		return "admin"
	case UserTypeShipper:
		return "shipper"
	case UserTypeCarrier:
		return "carrier"
	case UserTypeDriver:
		return "driver"
	default:
		return "unknown"
	}
}

// Profile is the cached user record shown in the sidebar and stamped on loads.
type Profile struct {
	UserID   string   `json:"userId"`
	UserCode string   `json:"userCode"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Surname  string   `json:"surname"`
	UserType UserType `json:"userType"`
}

// Credential is the bearer token pair plus the profile of the signed-in user.
// There is no client-side expiry; it lives until logout or a 401 upstream.
type Credential struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	Profile      Profile `json:"profile"`
}
