package clients

import (
	"context"
	"net/http"

	"freight_admin/internal/models"
)

// IdentityClient covers authentication on the Identity service.
type IdentityClient struct {
	*Client
}

// NewIdentityClient creates a client for the Identity service.
func NewIdentityClient(baseURL string, opts Options) *IdentityClient {
	return &IdentityClient{Client: NewClient(baseURL, opts)}
}

// LoginRequest is the body of POST /api/authentication/login.
type LoginRequest struct {
	UserCode   string `json:"userCode"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	IsSuccess     bool            `json:"isSuccess"`
	ResultMessage string          `json:"resultMessage"`
	AccessToken   string          `json:"accessToken"`
	RefreshToken  string          `json:"refreshToken"`
	UserID        string          `json:"userId"`
	UserCode      string          `json:"userCode"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Surname       string          `json:"surname"`
	UserType      models.UserType `json:"userType"`
}

// LoginError carries the Identity service's refusal message.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string { return e.Message }

// Login exchanges user credentials for a bearer token and profile.
func (c *IdentityClient) Login(ctx context.Context, in LoginRequest) (*models.Credential, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method:       http.MethodPost,
		path:         "/api/authentication/login",
		body:         in,
		decodeErrors: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess || resp.AccessToken == "" {
		msg := resp.ResultMessage
		if msg == "" {
			msg = "Login failed"
		}
		return nil, &LoginError{Message: msg}
	}
	return &models.Credential{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Profile: models.Profile{
			UserID:   resp.UserID,
			UserCode: resp.UserCode,
			Email:    resp.Email,
			Name:     resp.Name,
			Surname:  resp.Surname,
			UserType: resp.UserType,
		},
	}, nil
}

// RegisterRequest is the body of POST /api/authentication/register.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,max=100"`
	Surname  string          `json:"surname" binding:"required,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password" binding:"required,min=6"`
	UserType models.UserType `json:"userType"`
}

// Register creates an account; the user must verify it before logging in.
func (c *IdentityClient) Register(ctx context.Context, in RegisterRequest) (*models.SubmitResult, error) {
	var out models.SubmitResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/authentication/register", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerificationRequest confirms an account with the code sent by e-mail.
type VerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"`
}

// Verify submits a verification code.
func (c *IdentityClient) Verify(ctx context.Context, in VerificationRequest) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/api/authentication/verify", body: in}, nil)
}

// GenerateVerificationCode asks the Identity service to send a new code.
func (c *IdentityClient) GenerateVerificationCode(ctx context.Context, email string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/authentication/generate-verification-code",
		body:   map[string]string{"email": email},
	}, nil)
}
