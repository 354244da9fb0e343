package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"habit_tracker/internal/config"
	"habit_tracker/internal/handlers"
	"habit_tracker/internal/logger"
	"habit_tracker/internal/repository"
	"habit_tracker/internal/repository/db"
	"habit_tracker/internal/server"
	"habit_tracker/internal/service"
)

// @title Habit Tracker API
// @version 1.0
// @description Habits, completion logs and end-of-day summaries.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// load configs/config.yml + HABITS_* env
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.New(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading config", "err", err)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	loc, err := cfg.Summary.Location()
	if err != nil {
		log.Fatalw("invalid summary timezone", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Location:   loc,
	})
	apiHandler := handlers.NewHandler(services, log).
		WithAuthRateLimit(cfg.Auth.RateLimit.RPS, cfg.Auth.RateLimit.Burst).
		WithTrustedProxies(cfg.HTTP.TrustedProxies)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.HTTP, apiHandler, log)

	waitForShutdown(srv, cfg.HTTP, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		path = "app.db"
	}
	log.Infow("opening sqlite", "path", path)
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.HTTPConfig, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", cfg.Port)
		if err := srv.Run(cfg, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.HTTPConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
