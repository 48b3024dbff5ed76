// Package main provides the housing LINE bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/chungli-bot/house-linebot-go/internal/bot"
	"github.com/chungli-bot/house-linebot-go/internal/bot/listing"
	"github.com/chungli-bot/house-linebot-go/internal/buildinfo"
	"github.com/chungli-bot/house-linebot-go/internal/config"
	"github.com/chungli-bot/house-linebot-go/internal/forms"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
	"github.com/chungli-bot/house-linebot-go/internal/notifier"
	"github.com/chungli-bot/house-linebot-go/internal/sentry"
	"github.com/chungli-bot/house-linebot-go/internal/store"
	"github.com/chungli-bot/house-linebot-go/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Release()).Info("Starting housing LINE bot server")

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
		defer sentry.Flush(2 * time.Second)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	st, err := store.NewFirestore(context.Background(), cfg, log, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Firestore")
	}
	defer func() { _ = st.Close() }()
	log.WithField("project_id", cfg.FirebaseProjectID).Info("Firestore connected")

	client, err := messaging_api.NewMessagingApiAPI(cfg.LineChannelToken)
	if err != nil {
		log.WithError(err).Fatal("Failed to create LINE messaging client")
	}

	loadingNotifier := notifier.New(cfg, log, m)
	log.WithField("workers", cfg.LoadingWorkers).Info("Loading notifier started")

	botRegistry := bot.NewRegistry()
	botRegistry.Register(listing.NewHandler(st, cfg, log, m))

	processor := bot.NewProcessor(bot.ProcessorConfig{
		Registry: botRegistry,
		Notifier: loadingNotifier,
		Logger:   log,
	})

	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		ChannelSecret: cfg.LineChannelSecret,
		Client:        client,
		Metrics:       m,
		Logger:        log,
		Processor:     processor,
		RateLimitRPS:  cfg.GlobalRateLimitRPS,
	})

	formHandlers := forms.New(forms.HandlersConfig{
		Store:   st,
		Client:  client,
		Config:  cfg,
		Logger:  log,
		Metrics: m,
	})

	if cfg.AgentUserID == "" {
		log.Warn("AGENT_LINE_USER_ID not configured, booking notifications to agent disabled")
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, routeDeps{
		cfg:      cfg,
		store:    st,
		client:   client,
		webhook:  webhookHandler,
		forms:    formHandlers,
		registry: registry,
		logger:   log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Stop accepting new requests first, then drain in-flight webhook
	// batches and queued loading notifications.
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := webhookHandler.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Timeout draining webhook events")
	}
	if err := loadingNotifier.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Timeout draining loading notifier")
	}

	if err := st.Close(); err != nil {
		log.WithError(err).Error("Failed to close Firestore client")
	}

	log.Info("Server stopped")
}
