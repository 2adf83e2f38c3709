package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/matrixmedia/matrix/internal/api/http"
	"github.com/matrixmedia/matrix/internal/api/identity"
	"github.com/matrixmedia/matrix/internal/api/mail"
	"github.com/matrixmedia/matrix/internal/api/media"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/internal/api/store/drivers/sqlite"
	"github.com/matrixmedia/matrix/pkg/cryptox"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *SessionKeys
	mailer   mail.Mailer
	notifier *mail.Notifier
	media    media.ObjectStorage
	identity *identity.Registry

	// Services
	accountService       *service.AccountService
	passwordResetService *service.PasswordResetService
	graphService         *service.GraphService
	profileService       *service.ProfileService
	federatedService     *service.FederatedService
	housekeepingService  *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "matrix-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitSessionKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	if err := app.initIntegrations(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("matrix api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains requests, waits for queued mail and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down matrix api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	// Welcome and password changed notices may still be in flight
	app.notifier.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("matrix api stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initIntegrations sets up mail, object storage and the OAuth providers.
// Unconfigured mail and storage fall back to a logging mailer and to
// refusing uploads.
func (app *Application) initIntegrations(ctx context.Context) error {
	if app.cfg.SMTP.Host != "" {
		m, err := mail.NewSMTPMailer(app.cfg.SMTP)
		if err != nil {
			return fmt.Errorf("failed to initialize mailer: %w", err)
		}
		app.mailer = m
		app.logger.Info("smtp mailer enabled", "host", app.cfg.SMTP.Host, "port", app.cfg.SMTP.Port)
	} else {
		app.mailer = &mail.LogMailer{Logger: app.logger}
		app.logger.Warn("SMTP_HOST not set, mail will only be logged")
	}
	app.notifier = mail.NewNotifier(app.mailer, app.logger)

	if app.cfg.S3.Bucket != "" {
		s, err := media.NewS3Storage(ctx, app.cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		app.media = s
		app.logger.Info("s3 object storage enabled", "bucket", app.cfg.S3.Bucket)
	} else {
		app.media = media.Disabled{}
		app.logger.Warn("S3_BUCKET not set, picture uploads are disabled")
	}

	app.identity = identity.NewRegistry(app.cfg.Providers, &http.Client{Timeout: 10 * time.Second})

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	sessions := &service.SessionIssuer{
		Signer: app.keys.Signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}

	app.accountService = &service.AccountService{
		Store:    app.db,
		Sessions: sessions,
		Notifier: app.notifier,
	}
	app.passwordResetService = &service.PasswordResetService{
		Store:    app.db,
		Mailer:   app.mailer,
		Notifier: app.notifier,
		TTL:      app.cfg.OTPTTL,
		Cooldown: app.cfg.OTPCooldown,
	}
	app.graphService = &service.GraphService{Store: app.db}
	app.profileService = &service.ProfileService{
		Store:          app.db,
		Media:          app.media,
		MaxUploadBytes: app.cfg.MaxUploadBytes,
	}
	app.federatedService = &service.FederatedService{
		Store:    app.db,
		Sessions: sessions,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		app.db,
		app.logger,
		httpapi.Options{
			BuildVersion: BuildVersion,
			Cookie: httpapi.CookieConfig{
				Name:   app.cfg.CookieName,
				TTL:    app.cfg.SessionTTL,
				Secure: app.cfg.CookieSecure,
			},
			ClientURL:      app.cfg.ClientURL,
			CORSOrigins:    app.cfg.CORSOrigins,
			MaxUploadBytes: app.cfg.MaxUploadBytes,
		},
	)

	// Wire services to router
	router.AccountService = app.accountService
	router.PasswordResetService = app.passwordResetService
	router.GraphService = app.graphService
	router.ProfileService = app.profileService
	router.FederatedService = app.federatedService
	router.Identity = app.identity
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
