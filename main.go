package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/mauv0809/nextpick/internal/database"
	server "github.com/mauv0809/nextpick/internal/http"
	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/notifier/slack"
	"github.com/mauv0809/nextpick/internal/processor"
	"github.com/mauv0809/nextpick/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	// The server is the remote source for clients, so it only reads the local file.
	clubCfg := config.Resolve(context.Background(), cfg.ClubConfigPath, nil)
	log.Info("Club config resolved", "suggestions", clubCfg.Suggestions.DefaultCount, "points", clubCfg.Voting.PointSystem.Points)

	clubStore := club.New(db, clubCfg.Rules())
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	tally := metrics.New(db)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	var (
		events pubsub.PubSubClient
		proc   *processor.Processor
	)
	if cfg.PubSub.ProjectID != "" {
		events = pubsub.New(cfg.PubSub.ProjectID, cfg.PubSub.TopicPrefix)
		proc = processor.New(clubStore, notifier, metricsSvc, events, tally)
		log.Info("Publishing round events to Pub/Sub", "project", cfg.PubSub.ProjectID, "prefix", cfg.PubSub.TopicPrefix)
	} else {
		loop := pubsub.NewLoopback()
		events = loop
		proc = processor.New(clubStore, notifier, metricsSvc, events, tally)
		loop.Subscribe(proc.HandleMessage)
		log.Info("GCP_PROJECT not set, round events are handled in-process")
	}
	defer events.Close()

	s := server.NewServer(
		clubStore,
		metricsSvc,
		metricsHandler,
		tally,
		cfg,
		clubCfg,
		notifier,
		proc,
		events,
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

	log.Info("Server process shutting down")
}
