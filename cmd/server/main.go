package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventportal/config"
	"eventportal/internal/adapters/email"
	httpdelivery "eventportal/internal/delivery/http"
	"eventportal/internal/delivery/http/controllers"
	"eventportal/internal/delivery/http/middleware"
	"eventportal/internal/draft"
	"eventportal/internal/repository/memory"
	"eventportal/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Event Portal API
// @version 1.0
// @description Event discovery and ticket purchase portal with an admin event management console.
// @BasePath /
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	eventRepo := memory.NewEventRepo()
	orderRepo := memory.NewOrderRepo()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.AWSRegion,
			AccessKeyID:     cfg.Mailer.AWSAccessKeyID,
			SecretAccessKey: cfg.Mailer.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer failed", "error", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventService := services.NewEventService(eventRepo, orderRepo, serviceTimeout)
	orderService := services.NewOrderService(orderRepo, eventRepo, emailService, logger, serviceTimeout)

	draftStore := draft.NewStore()
	coordinator := draft.NewCoordinator(eventService, logger)

	mux := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewOrderController(logger, orderService),
		controllers.NewDashboardController(logger, eventService),
		controllers.NewDraftController(logger, draftStore, coordinator),
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, mux)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
