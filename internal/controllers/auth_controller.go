package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"freight_admin/internal/activity"
	"freight_admin/internal/clients"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
)

// Authenticator is the Identity service as seen by the login screen.
type Authenticator interface {
	Login(ctx context.Context, in clients.LoginRequest) (*models.Credential, error)
	Register(ctx context.Context, in clients.RegisterRequest) (*models.SubmitResult, error)
	Verify(ctx context.Context, in clients.VerificationRequest) error
	GenerateVerificationCode(ctx context.Context, email string) error
}

// AuthController handles login, logout and account verification.
type AuthController struct {
	Identity Authenticator
	Sessions session.Store
	Drafts   draftDiscarder
	Tokens   *middleware.SessionTokens
	Activity activity.Log
	Registry gate.Registry
}

type loginInput struct {
	UserCode   string `json:"userCode"`
	Email      string `json:"email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// Login exchanges user credentials for a bearer token and starts a session.
func (a *AuthController) Login(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	userCode := strings.TrimSpace(body.UserCode)
	if userCode == "" {
		userCode = strings.TrimSpace(body.Email)
	}
	if userCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	cred, err := a.Identity.Login(c.Request.Context(), clients.LoginRequest{
		UserCode:   userCode,
		Password:   body.Password,
		RememberMe: body.RememberMe,
	})
	if err != nil {
		var lerr *clients.LoginError
		if errors.As(err, &lerr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": lerr.Message})
			return
		}
		logrus.WithError(err).Error("Login: identity service call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "An error occurred. Please try again."})
		return
	}

	// Drop whatever the browser held before and rotate the session id.
	dropSession(c, a.Sessions, a.Drafts)
	sid, err := a.Tokens.Issue(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	if err := a.Sessions.Set(c.Request.Context(), sid, *cred); err != nil {
		logrus.WithError(err).Error("Login: could not store credential")
		a.Tokens.Revoke(c)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	record(c.Request.Context(), a.Activity, cred.Profile.UserID, models.ActivityLogin, cred.Profile.Email, "")
	logrus.WithField("user_id", cred.Profile.UserID).Info("user logged in")

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"user":     cred.Profile,
		"redirect": gate.DefaultPath,
	})
}

// LoginPage is the only page outside the gate. A user who already holds a
// token is sent to the dashboard.
func (a *AuthController) LoginPage(c *gin.Context) {
	if cred := a.currentCredential(c); cred != nil && cred.AccessToken != "" {
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"redirect": gate.DefaultPath})
			return
		}
		c.Redirect(http.StatusFound, gate.DefaultPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": gin.H{"id": "login", "title": "Sign in"}})
}

// Logout clears the credential, the cached profile and any wizard draft.
func (a *AuthController) Logout(c *gin.Context) {
	cred := a.currentCredential(c)
	dropSession(c, a.Sessions, a.Drafts)
	a.Tokens.Revoke(c)
	if cred != nil {
		record(c.Request.Context(), a.Activity, cred.Profile.UserID, models.ActivityLogout, cred.Profile.Email, "")
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": gate.LoginPath})
		return
	}
	c.Redirect(http.StatusSeeOther, gate.LoginPath)
}

// profileReader is implemented by stores that cache the profile apart from
// the tokens.
type profileReader interface {
	Profile(ctx context.Context, sessionID string) (*models.Profile, error)
}

// Me returns the profile of the signed-in user.
func (a *AuthController) Me(c *gin.Context) {
	if pr, ok := a.Sessions.(profileReader); ok {
		if p, err := pr.Profile(c.Request.Context(), middleware.SessionID(c)); err == nil {
			c.JSON(http.StatusOK, gin.H{"user": p})
			return
		}
	}
	cred := middleware.Credential(c)
	c.JSON(http.StatusOK, gin.H{"user": cred.Profile})
}

// Decision reports what the session gate decides for ?path=.
func (a *AuthController) Decision(c *gin.Context) {
	path := c.DefaultQuery("path", gate.RootPath)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	g := gate.New(a.Registry)
	decision, err := g.Navigate(c.Request.Context(), path, a.currentCredential(c))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{"path": path, "decision": decision}
	if target, ok := decision.Redirect(); ok {
		resp["redirect"] = target
	}
	c.JSON(http.StatusOK, resp)
}

// Register creates an account on the Identity service.
func (a *AuthController) Register(c *gin.Context) {
	var input clients.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := a.Identity.Register(c.Request.Context(), input)
	if err != nil {
		logrus.WithError(err).Warn("Register: identity service call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Registration failed"})
		return
	}
	if !res.IsSuccess {
		msg := res.Message
		if msg == "" {
			msg = "Registration failed"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful, please verify your email"})
}

// Verify confirms an account with the e-mailed code.
func (a *AuthController) Verify(c *gin.Context) {
	var input clients.VerificationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Identity.Verify(c.Request.Context(), input); err != nil {
		logrus.WithError(err).Warn("Verify: identity service call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account verified"})
}

// SendVerificationCode asks for a fresh verification code.
func (a *AuthController) SendVerificationCode(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Identity.GenerateVerificationCode(c.Request.Context(), input.Email); err != nil {
		logrus.WithError(err).Warn("SendVerificationCode: identity service call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not send verification code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

func (a *AuthController) currentCredential(c *gin.Context) *models.Credential {
	sid := middleware.SessionID(c)
	if sid == "" {
		return nil
	}
	cred, err := a.Sessions.Get(c.Request.Context(), sid)
	if err != nil {
		return nil
	}
	return cred
}
