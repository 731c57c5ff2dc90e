package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/config"
	v1 "github.com/pharmflow/pharmflow/internal/handler/v1"
	"github.com/pharmflow/pharmflow/internal/repository"
	"github.com/pharmflow/pharmflow/internal/service"
	"github.com/pharmflow/pharmflow/pkg/auth"
	"github.com/pharmflow/pharmflow/pkg/database"
	"github.com/pharmflow/pharmflow/pkg/logger"
	"github.com/pharmflow/pharmflow/pkg/metrics"
	"github.com/pharmflow/pharmflow/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(cfg.Tracing)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	collector := metrics.NewCollector("pharmflow")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	pharmacyRepo := repository.NewPharmacyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log)
	defer auditSvc.Shutdown()

	authSvc := service.NewAuthService(userRepo, jwtManager, log)
	pharmacySvc := service.NewPharmacyService(pharmacyRepo, auditSvc, log)
	catalogSvc := service.NewCatalogService(serviceRepo, pharmacyRepo, auditSvc, log)
	scheduleSvc := service.NewScheduleService(scheduleRepo, serviceRepo, auditSvc, log)
	availabilitySvc := service.NewAvailabilityService(serviceRepo, scheduleRepo, bookingRepo, collector, log)
	bookingSvc := service.NewBookingService(bookingRepo, availabilitySvc, auditSvc, collector, log)

	router := v1.NewRouter(v1.RouterDeps{
		Config:     cfg,
		JWTManager: jwtManager,
		Metrics:    collector,
		Auth:       v1.NewAuthHandler(authSvc),
		Pharmacies: v1.NewPharmacyHandler(pharmacySvc),
		Services:   v1.NewServiceHandler(catalogSvc, availabilitySvc),
		Schedules:  v1.NewScheduleHandler(scheduleSvc),
		Bookings:   v1.NewBookingHandler(bookingSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}
