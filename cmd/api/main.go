package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tallerpro/booking-api/config"
	"github.com/tallerpro/booking-api/internal/email"
	adminHandler "github.com/tallerpro/booking-api/internal/handler/admin"
	authHandler "github.com/tallerpro/booking-api/internal/handler/auth"
	bookingHandler "github.com/tallerpro/booking-api/internal/handler/booking"
	catalogHandler "github.com/tallerpro/booking-api/internal/handler/catalog"
	"github.com/tallerpro/booking-api/internal/repository/postgres"
	"github.com/tallerpro/booking-api/internal/router"
	"github.com/tallerpro/booking-api/internal/service/audit"
	authService "github.com/tallerpro/booking-api/internal/service/auth"
	bookingService "github.com/tallerpro/booking-api/internal/service/booking"
	catalogService "github.com/tallerpro/booking-api/internal/service/catalog"
	identityService "github.com/tallerpro/booking-api/internal/service/identity"
	reportService "github.com/tallerpro/booking-api/internal/service/report"
	"github.com/tallerpro/booking-api/internal/upstream"
	"github.com/tallerpro/booking-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})

	// Upstream clients
	citasClient := upstream.NewAppointmentsClient(cfg.Upstream.Appointments.BaseURL, cfg.Upstream.Appointments.Timeout)
	catalogClient := upstream.NewCatalogClient(cfg.Upstream.Catalog.BaseURL, cfg.Upstream.Catalog.Timeout)
	authClient := upstream.NewAuthClient(cfg.Upstream.Auth.BaseURL, cfg.Upstream.Auth.Timeout)
	identityClient := upstream.NewIdentityClient(cfg.Identity.BaseURL, cfg.Identity.APIToken, cfg.Identity.Timeout)

	// Optional audit trail
	var auditor audit.Recorder = audit.NopRecorder{}
	var auditReader adminHandler.AuditReader
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to audit database")
		}
		defer db.Close()

		auditSvc := audit.NewService(postgres.NewAuditRepository(db), log)
		auditor = auditSvc
		auditReader = auditSvc
	}

	// Optional duplicate-submission guard
	var guard bookingService.Guard = bookingService.NopGuard{}
	if cfg.Redis.Enabled {
		guard, err = bookingService.NewRedisGuard(cfg.Redis.URL, cfg.Redis.GuardTTL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure submission guard")
		}
	}

	// Optional confirmation mail
	var mailer email.Sender = email.Nop{}
	if cfg.SMTP.Enabled {
		mailer = email.NewGomailSender(cfg.SMTP)
	}

	// Services
	bookingSvc := bookingService.NewService(citasClient, guard, auditor, mailer, log)
	catalogSvc := catalogService.NewService(catalogClient, cfg.CatalogCacheTTL)
	identitySvc := identityService.NewService(identityClient, cfg.Identity.CacheTTL, log)
	authSvc := authService.NewService(authClient, cfg.JWT, log)
	reportSvc := reportService.NewService(citasClient, log)

	// Router
	r := router.NewRouter(
		cfg,
		log,
		bookingHandler.NewHandler(bookingSvc, identitySvc),
		catalogHandler.NewHandler(catalogSvc),
		authHandler.NewHandler(authSvc),
		adminHandler.NewHandler(bookingSvc, reportSvc, auditReader),
		authSvc,
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting booking API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
