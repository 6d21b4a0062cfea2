package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/config"
	"github.com/mauv0809/crewboard/internal/database"
	server "github.com/mauv0809/crewboard/internal/http"
	"github.com/mauv0809/crewboard/internal/ledger"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/notifier/bus"
	slacknotifier "github.com/mauv0809/crewboard/internal/notifier/slack"
	"github.com/mauv0809/crewboard/internal/profile"
	"github.com/mauv0809/crewboard/internal/pubsub"
	"github.com/mauv0809/crewboard/internal/roster"
	"github.com/slack-go/slack"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	directory := club.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
	}

	// The Slack notifier delivers directly, or behind /notify when notifications travel over Pub/Sub.
	var deliverer notifier.Notifier
	var linker *club.SlackLinker
	if cfg.Slack.Token != "" {
		deliverer = slacknotifier.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, directory, metricsSvc)
		linker = club.NewSlackLinker(directory, slack.New(cfg.Slack.Token))
	}

	var gateway notifier.Notifier
	switch cfg.Notifier.Kind {
	case config.NotifierPubSub:
		gateway = bus.NewNotifier(pubsubClient, cfg.Notifier.Topic)
	default:
		gateway = deliverer
	}
	log.Info("Notification gateway selected", "kind", cfg.Notifier.Kind, "topic", cfg.Notifier.Topic)

	dispatcher := notifier.NewDispatcher(gateway, metricsSvc, cfg.Notifier.Timeout, cfg.Notifier.Concurrency)
	rosterSvc := roster.New(
		activity.New(db),
		ledger.New(db),
		profile.New(cfg.Profile),
		dispatcher,
		metricsSvc,
		roster.WithMaxAttempts(cfg.SaveMaxAttempts),
	)

	s := server.NewServer(
		rosterSvc,
		directory,
		linker,
		metricsSvc,
		metricsHandler,
		deliverer,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Waiting for pending notifications")
	dispatcher.Wait()
	log.Info("Server process shutting down")
}
