package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/mwork/booker-qa/internal/config"
	"github.com/mwork/booker-qa/internal/pkg/database"
	"github.com/mwork/booker-qa/internal/pkg/logger"
	"github.com/mwork/booker-qa/internal/stub"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().Str("env", cfg.Env).Msg("Starting booking reference server")

	ctx := context.Background()

	var db *sqlx.DB
	if cfg.StubDatabaseURL != "" {
		var err error
		db, err = database.NewPostgres(ctx, cfg.StubDatabaseURL, database.DefaultPoolConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer database.ClosePostgres(db)
	}

	redis, err := database.NewRedis(ctx, cfg.StubRedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redis != nil {
		defer database.CloseRedis(redis)
	}

	deps, err := stub.NewDeps(ctx, cfg, db, redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build services")
	}
	if err := deps.Seed(ctx, cfg.StubSeedBookings); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed bookings")
	}

	server := stub.NewServer(cfg, deps)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
