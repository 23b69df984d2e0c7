package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/api"
	"github.com/maeesh-asiff1787/medicare-cms/internal/couchbase"
	"github.com/maeesh-asiff1787/medicare-cms/internal/kv"
	"github.com/maeesh-asiff1787/medicare-cms/internal/metrics"
	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
	"github.com/maeesh-asiff1787/medicare-cms/pkg/zerolog_config"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Msg("No .env file found, assuming environment variables are set")
	}

	elasticsearchURL := getEnvOrDefault("ELASTICSEARCH_URL", "")
	apiPort := getEnvOrDefault("API_PORT", "8080")
	apiLogLevel := getEnvOrDefault("API_LOG_LEVEL", "info")

	zerolog_config.SetAppPrefix("medicare-api")
	zerolog_config.Startup(elasticsearchURL, "logs", apiLogLevel)

	log.Info().Msg("Starting medicare-api service")

	// Start system metrics collection (no-op unless enabled)
	metrics.StartSystemMetrics(15 * time.Second)

	// Pick the storage backend
	var db kv.Store
	if getEnvOrDefault("STORE_BACKEND", "couchbase") == "memory" {
		log.Warn().Msg("Using in-memory storage, records will not survive a restart")
		db = kv.NewMemory()
	} else {
		conn, err := couchbase.NewConnection()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Couchbase")
		}
		defer conn.Close()
		db = couchbase.NewDocuments(conn)
	}

	// Open the record store (load-or-seed)
	recordStore, err := store.Open(context.Background(), db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}

	// Setup routes
	router := api.New(recordStore).Routes()

	// Expose host/runtime metrics when collection is enabled
	if reg := metrics.Registry(); reg != nil {
		router.Handle("/system-metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	}

	server := &http.Server{
		Addr:    ":" + apiPort,
		Handler: router,
	}

	// Listen for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("port", apiPort).
			Msg("Server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().
				Err(err).
				Msg("Failed to start server")
		}
	}()

	<-sigChan
	log.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("API service shutdown complete")
}

// getEnvOrDefault retrieves an environment variable with a fallback
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
