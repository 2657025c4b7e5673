package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accounts-service/internal/config"
	"accounts-service/internal/infrastructure/database/postgres"
	"accounts-service/internal/logger"
	"accounts-service/internal/notification"
	"accounts-service/internal/routes"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}

	log, err := logger.New(env)
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application", zap.String("environment", env))

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		log.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		log.Fatal("Token secrets are missing. Please set ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET environment variables.")
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	senders := buildSenders(cfg, log)

	router := routes.SetupRoutes(cfg, db, senders, log)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Info("Server exited properly")
}

// buildSenders wires the outbound channels. SES handles email when a region
// is configured; SMS and invitation notifications fall back to the logging
// sender until a real transport is configured.
func buildSenders(cfg *config.Config, log *zap.Logger) routes.Senders {
	logSender := notification.NewLogSender(log)

	senders := routes.Senders{
		Email:   logSender,
		SMS:     logSender,
		Invites: logSender,
	}

	if cfg.Email.Region != "" && cfg.Email.From != "" {
		mailer, err := notification.NewSESMailer(context.Background(), cfg.Email)
		if err != nil {
			log.Error("Failed to initialize SES mailer, falling back to log sender", zap.Error(err))
		} else {
			senders.Email = mailer
		}
	}

	return senders
}
