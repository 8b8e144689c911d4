package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"eventpass/config"
	_ "eventpass/docs"
	"eventpass/internal/adapters/email"
	deliveryhttp "eventpass/internal/delivery/http"
	"eventpass/internal/delivery/http/controllers"
	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/delivery/http/middleware"
	"eventpass/internal/domain"
	"eventpass/internal/observability"
	"eventpass/internal/repository/postgres"
	"eventpass/internal/services"
)

// @title Event Pass API
// @version 1.0
// @description Event registration, attendee badges and one-time check-in.
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Setup(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", "err", err)
		}
	}()

	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("database schema is up to date")
	}

	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	checkInRepo := postgres.NewCheckInRepository(db)

	emailService, links, err := newEmailService(logger, cfg)
	if err != nil {
		return err
	}

	eventService := services.NewEventService(eventRepo, attendeeRepo, cfg.ContextTimeout)
	attendeeService := services.NewAttendeeService(logger, eventRepo, attendeeRepo, emailService, links, cfg.ContextTimeout)
	checkInService := services.NewCheckInService(attendeeRepo, checkInRepo, cfg.ContextTimeout)

	router := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewAttendeeController(logger, attendeeService),
		controllers.NewCheckInController(logger, checkInService, cfg.PublicBaseURL, cfg.TrustProxyHeaders),
	)
	var handler http.Handler = middleware.LoggingMiddleware(logger, router)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.Tracing(otel.GetTracerProvider(), handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newEmailService wires registration emails. Without PUBLIC_BASE_URL there is no way to build
// links outside a request, so emails are disabled.
func newEmailService(logger *slog.Logger, cfg *config.Config) (domain.EmailService, domain.LinkBuilder, error) {
	if cfg.PublicBaseURL == "" {
		logger.Warn("PUBLIC_BASE_URL is not set, registration emails are disabled")
		return nil, nil, nil
	}
	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, nil, err
	}
	return services.NewEmailService(logger, mailer, renderer), helpers.NewLinks(cfg.PublicBaseURL), nil
}
