package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/internal"
	"portfolio-api/internal/config"
	"portfolio-api/internal/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		logrus.Fatalf("Configuration error: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := internal.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithFields(logrus.Fields{
		"addr":           cfg.Addr,
		"environment":    cfg.Environment,
		"jwt_issuer":     cfg.JWTIssuer,
		"jwt_audience":   cfg.JWTAudience,
		"jwt_expiry":     cfg.JWTExpiry.String(),
		"protect_writes": cfg.ProtectWrites,
		"metrics":        cfg.EnableMetrics,
	}).Info("Starting Portfolio API server")

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("HTTP server failed")
		}
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	if err := srv.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("Closing database failed")
	}
}
