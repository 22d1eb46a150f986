// Command cleanup removes expired sessions and unused expired invitation
// tokens. It is intended for an external cron job; the server also runs the
// same purge in-process when cleanup is enabled in config.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alliancehub/backend/internal/adapter/postgres"
	inviterepo "github.com/alliancehub/backend/internal/adapter/postgres/invite"
	sessionrepo "github.com/alliancehub/backend/internal/adapter/postgres/session"
	"github.com/alliancehub/backend/internal/app"
	"github.com/alliancehub/backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now().UTC()

	deletedSessions, err := sessionrepo.New(pool).DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("purge expired sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deletedInvites, err := inviterepo.New(pool).DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("purge expired invites", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int64("sessions_deleted", deletedSessions),
		slog.Int64("invites_deleted", deletedInvites),
	)
}
