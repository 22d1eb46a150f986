// Package app wires configuration, storage, services and transport into a
// running HTTP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"github.com/alliancehub/backend/internal/adapter/postgres"
	announcementrepo "github.com/alliancehub/backend/internal/adapter/postgres/announcement"
	eventrepo "github.com/alliancehub/backend/internal/adapter/postgres/event"
	inviterepo "github.com/alliancehub/backend/internal/adapter/postgres/invite"
	pollrepo "github.com/alliancehub/backend/internal/adapter/postgres/poll"
	sessionrepo "github.com/alliancehub/backend/internal/adapter/postgres/session"
	userrepo "github.com/alliancehub/backend/internal/adapter/postgres/user"
	"github.com/alliancehub/backend/internal/config"
	"github.com/alliancehub/backend/internal/service/announcement"
	"github.com/alliancehub/backend/internal/service/auth"
	"github.com/alliancehub/backend/internal/service/event"
	"github.com/alliancehub/backend/internal/service/invite"
	"github.com/alliancehub/backend/internal/service/poll"
	"github.com/alliancehub/backend/internal/service/user"
	"github.com/alliancehub/backend/internal/transport/middleware"
	"github.com/alliancehub/backend/internal/transport/rest"
	"github.com/alliancehub/backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	sessions := sessionrepo.New(pool)
	events := eventrepo.New(pool)
	polls := pollrepo.New(pool)
	announcements := announcementrepo.New(pool)
	invites := inviterepo.New(pool)

	authSvc := auth.NewService(logger, users, sessions, invites, txm, cfg.Session.TTL, cfg.Session.PasswordHashCost)
	eventSvc := event.NewService(logger, events, cfg.Schedule.ReferenceZone)
	pollSvc := poll.NewService(logger, polls, txm, cfg.Schedule.ReferenceZone)
	announcementSvc := announcement.NewService(logger, announcements)
	inviteSvc := invite.NewService(logger, invites, cfg.Invite.TTL)
	userSvc := user.NewService(logger, users)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handlers := rest.Handlers{
		Auth:         rest.NewAuthHandler(authSvc, cfg.Session, logger),
		Event:        rest.NewEventHandler(eventSvc, logger),
		Poll:         rest.NewPollHandler(pollSvc, logger),
		Announcement: rest.NewAnnouncementHandler(announcementSvc, logger),
		Invite:       rest.NewInviteHandler(inviteSvc, logger),
		User:         rest.NewUserHandler(userSvc, logger),
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
	}

	router := rest.NewRouter(cfg, logger, authSvc, handlers, limiter)

	if cfg.Cleanup.Enabled {
		c := cron.New()
		_, err := c.AddFunc(cfg.Cleanup.Spec, func() {
			purgeExpired(context.Background(), logger, sessions, inviteSvc)
		})
		if err != nil {
			return fmt.Errorf("schedule cleanup: %w", err)
		}
		c.Start()
		defer c.Stop()
		logger.Info("cleanup scheduled", slog.String("spec", cfg.Cleanup.Spec))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// migrate applies embedded migrations over a short-lived database/sql
// connection; the pgx pool stays untouched.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.Up(ctx, db)
}

type sessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type invitePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func purgeExpired(ctx context.Context, logger *slog.Logger, sessions sessionPurger, invites invitePurger) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	deletedSessions, err := sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("purge expired sessions", slog.String("error", err.Error()))
	}

	deletedInvites, err := invites.PurgeExpired(ctx)
	if err != nil {
		logger.Error("purge expired invites", slog.String("error", err.Error()))
	}

	logger.Info("cleanup run finished",
		slog.Int64("sessions_deleted", deletedSessions),
		slog.Int64("invites_deleted", deletedInvites),
	)
}
