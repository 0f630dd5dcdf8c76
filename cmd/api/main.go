package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice_portal_backend/internal/assignments"
	"backoffice_portal_backend/internal/auth"
	"backoffice_portal_backend/internal/email"
	"backoffice_portal_backend/internal/events"
	apphttp "backoffice_portal_backend/internal/http"
	"backoffice_portal_backend/internal/http/router"
	"backoffice_portal_backend/internal/leads"
	leadservice "backoffice_portal_backend/internal/leads/service"
	"backoffice_portal_backend/internal/notifications"
	"backoffice_portal_backend/internal/reference"
	"backoffice_portal_backend/internal/storage"
	"backoffice_portal_backend/internal/tickets"
	"backoffice_portal_backend/internal/users"
	"backoffice_portal_backend/internal/vendors"
	"backoffice_portal_backend/platform/config"
	"backoffice_portal_backend/platform/db"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Email sender: SMTP when enabled, otherwise a no-op that only logs.
	sender := initEmailSender(cfg, log)
	email.NewListener(eventBus, sender, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Import archive storage (MinIO). Lead imports still work without it;
	// the archive step is skipped when no endpoint is configured.
	var archiver leadservice.ImportArchiver
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure lead-imports bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketLeadImports())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		archiver = storageSvc
		log.Info("storage service initialized", "leadImportsBucket", cfg.GetMinioBucketLeadImports())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; lead import archiving disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, log, val)
	usersModule := users.NewModule(pool, log, val)
	leadsModule := leads.NewModule(pool, eventBus, archiver, log, val)
	assignmentsModule := assignments.NewModule(pool, eventBus, log, val)
	ticketsModule := tickets.NewModule(pool, eventBus, log, val)
	// Notifications module subscribes to domain events during construction
	notificationsModule := notifications.NewModule(pool, eventBus, log, val)
	referenceModule := reference.NewModule(pool, log, val)
	vendorsModule := vendors.NewModule(pool, log, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			usersModule,
			leadsModule,
			assignmentsModule,
			ticketsModule,
			notificationsModule,
			referenceModule,
			vendorsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email sending disabled; password reset OTPs will not be delivered")
		return email.NoopSender{}
	}

	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
