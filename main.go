package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/config"
	"github.com/mauv0809/fantafav/internal/database"
	"github.com/mauv0809/fantafav/internal/favorites"
	server "github.com/mauv0809/fantafav/internal/http"
	"github.com/mauv0809/fantafav/internal/metrics"
	"github.com/mauv0809/fantafav/internal/notifier"
	"github.com/mauv0809/fantafav/internal/notifier/slack"
	"github.com/mauv0809/fantafav/internal/players"
	"github.com/mauv0809/fantafav/internal/roster"
	"github.com/mauv0809/fantafav/internal/usecase"
	"github.com/mauv0809/fantafav/internal/viewmodel"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown LOG_LEVEL, keeping default", "level", cfg.LogLevel)
	}

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

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	rosterClient := roster.NewClient(cfg.FetchTimeout)
	repository := players.New(rosterClient, favorites.New(db), metricsSvc)
	vm := viewmodel.New(usecase.New(repository))
	defer vm.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Slack.Enabled() {
		slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
		updates, cancel := vm.Subscribe()
		defer cancel()
		go notifier.Watch(ctx, updates, slackNotifier, cfg.Slack.DryRun)
		log.Info("Slack alerts enabled", "channel", cfg.Slack.ChannelID, "dry_run", cfg.Slack.DryRun)
	}

	// Initial load; a failure leaves an empty roster and the error in the view state.
	if err := vm.FetchPlayers(ctx, cfg.RosterURL); err != nil {
		log.Warn("Initial roster fetch failed", "source", cfg.RosterURL, "error", err)
	}

	s := server.NewServer(vm, metricsHandler, cfg)

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

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
