// Command api serves the Eventura HTTP API and runs the daily reminder job.
//
// @title Eventura API
// @version 1.0
// @description Event catalogue with interests, likes and reminder emails.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventura/config"
	"eventura/internal/adapters/auth"
	"eventura/internal/adapters/email"
	httpdelivery "eventura/internal/delivery/http"
	"eventura/internal/delivery/http/controllers"
	"eventura/internal/delivery/http/middleware"
	"eventura/internal/repository/postgres"
	"eventura/internal/scheduler"
	"eventura/internal/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	runOnce := flag.Bool("run-reminders-once", false, "send today's reminders and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger, *runOnce); err != nil {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, runOnce bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	loc, err := cfg.Reminder.Location()
	if err != nil {
		return err
	}
	clock := services.SystemClock{}
	reminderService := services.NewReminderService(eventRepo, emailService, clock, logger, services.ReminderOptions{
		Location:    loc,
		Concurrency: cfg.Reminder.Concurrency,
		SendTimeout: cfg.Reminder.SendTimeout,
	})
	reminders, err := scheduler.New("event-reminders", cfg.Reminder.CronSpec, loc, func(ctx context.Context) error {
		_, err := reminderService.Run(ctx)
		return err
	}, logger)
	if err != nil {
		return err
	}

	if runOnce {
		return reminders.RunNow(ctx)
	}

	interestService := services.NewInterestService(eventRepo, interestRepo, clock, cfg.RequestTimeout)
	likeService := services.NewLikeService(eventRepo, likeRepo, clock, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, roleRepo, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Event:    controllers.NewEventController(logger, eventService),
		Interest: controllers.NewInterestController(logger, interestService),
		Like:     controllers.NewLikeController(logger, likeService),
		Reminder: controllers.NewReminderController(logger, reminderService),
		Health:   controllers.NewHealthController(logger, db),
	}, httpdelivery.RouterOptions{
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		ToggleLimiter:  middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	if cfg.Reminder.Enabled {
		reminders.Start()
	} else {
		logger.Info("reminder job disabled")
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if cfg.Reminder.Enabled {
		if err := reminders.Stop(shutdownCtx); err != nil {
			logger.Error("reminder job did not stop in time", "err", err)
		}
	}
	logger.Info("stopped")
	return nil
}
