package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"freight_admin/internal/activity"
	"freight_admin/internal/clients"
	"freight_admin/internal/config"
	"freight_admin/internal/gate"
	"freight_admin/internal/logger"
	"freight_admin/internal/middleware"
	"freight_admin/internal/routes"
	"freight_admin/internal/session"
	"freight_admin/internal/wizard"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(logger.Options{File: cfg.LogFile, Level: cfg.LogLevel, Stdout: cfg.LogStdout})
	gin.DefaultWriter = logrus.StandardLogger().Out

	// Connect to the database
	db, err := config.InitDB(cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := session.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Fatal("redis unavailable")
	}
	defer rdb.Close()

	opts := clients.Options{Timeout: cfg.UpstreamTimeout, InsecureTLS: cfg.UpstreamInsecureTLS}
	deps := routes.Deps{
		Tokens:   middleware.NewSessionTokens(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie),
		Sessions: session.NewRedisStore(rdb, cfg.SessionTTL),
		Drafts:   wizard.NewDraftStore(rdb, cfg.WizardTTL),
		Activity: activity.NewRepository(db),
		Pages:    gate.DefaultRegistry,
	}.WithClients(
		clients.NewIdentityClient(cfg.IdentityURL, opts),
		clients.NewLoadClient(cfg.LoadURL, opts),
	)

	// Setup Gin router, wrapped with CORS
	r := routes.SetupRouter(deps)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           middleware.EnableCORS(r, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("🚀 Server running at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
