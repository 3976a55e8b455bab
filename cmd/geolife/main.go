// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

// Package main is the entry point for the geolife command.
//
// geolife loads the Microsoft Research Geolife GPS trajectory dataset into
// DuckDB and prints eleven analytical reports over the stored data.
//
// # Usage
//
//	geolife            # run the reports against the existing database
//	geolife -i         # re-ingest the dataset first, then run the reports
//
// The dataset root (dataset.root, GEOLIFE_DATASET) must contain Data/ with one
// folder per user and labeled_ids.txt.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run context. An interrupted ingest leaves the
// batches committed so far; the next -i run starts over from an empty store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/geolife/internal/config"
	"github.com/tomtom215/geolife/internal/database"
	"github.com/tomtom215/geolife/internal/dataset"
	"github.com/tomtom215/geolife/internal/ingest"
	"github.com/tomtom215/geolife/internal/logging"
	"github.com/tomtom215/geolife/internal/metrics"
	"github.com/tomtom215/geolife/internal/report"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var initDatabase bool
	flag.BoolVar(&initDatabase, "i", false, "re-ingest the dataset before running the queries")
	flag.BoolVar(&initDatabase, "init-database", false, "re-ingest the dataset before running the queries")
	flag.Parse()

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("dataset_root", cfg.Dataset.Root).
		Str("db_path", cfg.Database.Path).
		Bool("init_database", initDatabase).
		Str("log_level", logging.GetLevel().String()).
		Msg("Starting geolife")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := run(ctx, cfg, initDatabase)
	stop()

	if cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logging.Error().Err(err).Str("path", cfg.Metrics.TextfilePath).Msg("Failed to write metrics textfile")
		}
	}
	os.Exit(code)
}

// run executes the optional ingest and the report sequence, returning the
// process exit code.
func run(ctx context.Context, cfg *config.Config, initDatabase bool) int {
	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Err(err).Msg("Failed to initialize database")
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Err(err).Msg("Error closing database")
		}
	}()
	if err := db.Ping(ctx); err != nil {
		logging.Err(err).Str("path", db.GetDatabasePath()).Msg("Database is not reachable")
		return 1
	}
	logging.Info().Str("path", db.GetDatabasePath()).Msg("Database initialized successfully")

	out := report.New(os.Stdout)

	if initDatabase {
		stats, err := ingestDataset(ctx, cfg, db)
		if errors.Is(err, dataset.ErrDatasetNotFound) {
			fmt.Println("Dataset not found. Add 'dataset' to the root of the project folder")
			return 1
		}
		if err != nil {
			logging.Err(err).Msg("Ingest failed")
			return 1
		}
		out.IngestSummary(stats)
	}

	if err := newReportRunner(db, out, &cfg.Analytics).Run(ctx); err != nil {
		logging.Err(err).Msg("Report failed")
		return 1
	}
	return 0
}

// ingestDataset replaces the database contents with the dataset.
func ingestDataset(ctx context.Context, cfg *config.Config, db *database.DB) (*ingest.Stats, error) {
	var progress ingest.ProgressTracker = ingest.NewInMemoryProgress()
	if cfg.Ingest.LedgerPath != "" {
		ledger, err := ingest.OpenBadgerProgress(cfg.Ingest.LedgerPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := ledger.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing ingest ledger")
			}
		}()
		progress = ledger
	}

	return ingest.NewLoader(cfg, db, progress, os.Stderr).Run(ctx)
}
