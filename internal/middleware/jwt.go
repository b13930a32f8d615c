package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"freight_admin/internal/session"
)

// SessionCookie carries the signed browser session id.
const SessionCookie = "fa_session"

const sessionIDKey = "session_id"

// SessionTokens signs and verifies the session cookie. The cookie only holds
// the session id; the credential itself stays in the store.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessionTokens creates a signer. ttl 0 means a browser-session cookie
// without expiry claim.
func NewSessionTokens(secret string, ttl time.Duration, secure bool) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Generate signs a token for sessionID.
func (s *SessionTokens) Generate(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
	}
	if s.ttl > 0 {
		claims["exp"] = now.Add(s.ttl).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token and returns its session id.
func (s *SessionTokens) Parse(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session token claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("session token without sid")
	}
	return sid, nil
}

// Issue starts a new browser session and sets its cookie.
func (s *SessionTokens) Issue(c *gin.Context) (string, error) {
	sid := session.NewID()
	token, err := s.Generate(sid)
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.ttl.Seconds()), "/", "", s.secure, true)
	c.Set(sessionIDKey, sid)
	return sid, nil
}

// Revoke deletes the session cookie.
func (s *SessionTokens) Revoke(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.secure, true)
	c.Set(sessionIDKey, "")
}

// LoadSession reads the session cookie into the context. A missing or
// invalid cookie leaves the request without a session id.
func LoadSession(tokens *SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if sid, err := tokens.Parse(raw); err == nil {
				c.Set(sessionIDKey, sid)
			}
		}
		c.Next()
	}
}

// SessionID returns the browser session id of the request, if any.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
