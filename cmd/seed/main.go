package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/couchbase"
	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
	"github.com/maeesh-asiff1787/medicare-cms/pkg/zerolog_config"
)

// Resets every collection document to the built-in seed dataset. Takes the
// writer lease first so a concurrent seeder cannot interleave its writes.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Msg("No .env file found, assuming environment variables are set")
	}

	zerolog_config.SetAppPrefix("medicare-seed")
	zerolog_config.Startup(os.Getenv("ELASTICSEARCH_URL"), "logs", os.Getenv("API_LOG_LEVEL"))

	log.Info().Msg("Starting medicare-seed job")

	conn, err := couchbase.NewConnection()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Couchbase")
	}
	defer conn.Close()

	locker := couchbase.NewWriterLock(conn, "medicare-seed", 1*time.Hour)

	log.Info().Msg("Taking writer lease for seeding")
	if err := locker.Lock(); err != nil {
		log.Fatal().Err(err).Msg("Failed to take writer lease")
	}
	defer func() {
		if err := locker.Unlock(); err != nil {
			log.Error().Err(err).Msg("Failed to release writer lease")
		}
	}()

	ctx := context.Background()
	docs := couchbase.NewDocuments(conn)

	seed := map[string]interface{}{
		store.KeyAccounts:      store.SeedAccounts(),
		store.KeyDoctors:       store.SeedDoctors(),
		store.KeyAppointments:  []store.Appointment{},
		store.KeyPrescriptions: []store.Prescription{},
		store.KeyLabReports:    []store.LabReport{},
		store.KeyProfiles:      map[string]store.Profile{},
		store.KeySession:       nil,
	}

	for key, value := range seed {
		if err := docs.Put(ctx, key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Failed to write seed document")
		}
		log.Info().Str("key", key).Msg("Seed document written")
	}

	log.Info().Msg("Seeding completed successfully")
}
