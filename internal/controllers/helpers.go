package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"freight_admin/internal/activity"
	"freight_admin/internal/clients"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
)

// draftDiscarder is the part of the wizard draft store the auth flow needs.
type draftDiscarder interface {
	Discard(ctx context.Context, sessionID string) error
}

// dropSession clears everything held for the browser session.
func dropSession(c *gin.Context, sessions session.Store, drafts draftDiscarder) {
	sid := middleware.SessionID(c)
	if sid == "" {
		return
	}
	ctx := c.Request.Context()
	if err := sessions.Clear(ctx, sid); err != nil {
		logrus.WithError(err).Error("could not clear credential")
	}
	if drafts != nil {
		if err := drafts.Discard(ctx, sid); err != nil {
			logrus.WithError(err).Warn("could not discard wizard draft")
		}
	}
}

// upstreamFailed answers an error from the Identity or Load service. A 401
// drops the credential and redirects to the login page; anything else is a
// 502 with a generic message.
func upstreamFailed(c *gin.Context, err error, sessions session.Store, drafts draftDiscarder, userMessage string) {
	if errors.Is(err, clients.ErrUnauthorized) {
		dropSession(c, sessions, drafts)
		middleware.NewNavigator(c).GoTo(gate.LoginPath, true)
		return
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Error("upstream call failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": userMessage})
}

// record writes an activity entry; failures are logged and ignored.
func record(ctx context.Context, log activity.Log, userID string, kind models.ActivityKind, subject, detail string) {
	if log == nil || userID == "" {
		return
	}
	entry := models.Activity{
		CreatedAt: time.Now(),
		UserID:    userID,
		Kind:      kind,
		Subject:   subject,
		Detail:    detail,
	}
	if err := log.Record(ctx, entry); err != nil {
		logrus.WithError(err).WithField("kind", kind).Warn("could not record activity")
	}
}
