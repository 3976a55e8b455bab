// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/tomtom215/geolife/internal/config"
	"github.com/tomtom215/geolife/internal/dataset"
	"github.com/tomtom215/geolife/internal/logging"
	"github.com/tomtom215/geolife/internal/metrics"
	"github.com/tomtom215/geolife/internal/models"
)

// DefaultBatchSize is the trackpoint batch size used when none is configured.
const DefaultBatchSize = 1000

// Store is the write side of the database used by a run.
type Store interface {
	ClearAll(ctx context.Context) error
	InsertUsers(ctx context.Context, users []models.User) (int, error)
	InsertActivities(ctx context.Context, activities []models.Activity) (int, error)
	InsertTrackPointsBatch(ctx context.Context, points []models.TrackPoint) (int, error)
}

// Loader runs dataset ingestion into a Store.
type Loader struct {
	dataset  config.DatasetConfig
	ingest   config.IngestConfig
	store    Store
	progress ProgressTracker

	// barOutput receives the parse progress bar; nil disables it.
	barOutput io.Writer
}

// NewLoader creates a loader. progress may be nil. barOutput receives the
// progress bar when ingest.progress is enabled.
func NewLoader(cfg *config.Config, store Store, progress ProgressTracker, barOutput io.Writer) *Loader {
	l := &Loader{
		dataset:  cfg.Dataset,
		ingest:   cfg.Ingest,
		store:    store,
		progress: progress,
	}
	if cfg.Ingest.Progress {
		l.barOutput = barOutput
	}
	if l.ingest.BatchSize <= 0 {
		l.ingest.BatchSize = DefaultBatchSize
	}
	return l
}

// Run parses the dataset and replaces the store contents with it.
func (l *Loader) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		RunID:       uuid.New().String(),
		DatasetRoot: l.dataset.Root,
		StartTime:   time.Now(),
	}
	ctx = logging.ContextWithRunID(ctx, stats.RunID)
	log := logging.Ctx(ctx)

	stage, err := l.run(ctx, stats)
	stats.EndTime = time.Now()
	metrics.RecordIngest(stats.Duration(), stage, err)
	if err != nil {
		return stats, err
	}

	if l.progress != nil {
		if err := l.progress.Save(ctx, stats); err != nil {
			log.Warn().Err(err).Msg("Failed to save ingest summary")
		}
	}

	log.Info().
		Int("users", stats.Users).
		Int("activities", stats.Activities).
		Int("trackpoints", stats.TrackPoints).
		Int("batches", stats.Batches).
		Dur("duration", stats.Duration()).
		Float64("records_per_second", stats.RecordsPerSecond()).
		Msg("Ingest completed")

	return stats, nil
}

// run performs the ingest steps and returns the failing stage with the error.
func (l *Loader) run(ctx context.Context, stats *Stats) (string, error) {
	log := logging.Ctx(ctx)

	if l.progress != nil {
		if prev, err := l.progress.Load(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to load previous ingest summary")
		} else if prev != nil {
			log.Info().
				Str("previous_run_id", prev.RunID).
				Time("previous_end", prev.EndTime).
				Int("previous_trackpoints", prev.TrackPoints).
				Msg("Replacing previous ingest")
		}
	}

	cols, err := l.parse(ctx)
	if err != nil {
		return "parse", fmt.Errorf("parse dataset: %w", err)
	}
	stats.Files = cols.Files

	log.Info().
		Int("files", cols.Files).
		Int("users", len(cols.Users)).
		Int("activities", len(cols.Activities)).
		Int("trackpoints", len(cols.TrackPoints)).
		Msg("Dataset parsed")

	if err := l.store.ClearAll(ctx); err != nil {
		return "clear", fmt.Errorf("clear store: %w", err)
	}
	if l.progress != nil {
		if err := l.progress.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to clear ingest summary")
		}
	}

	start := time.Now()
	n, err := l.store.InsertUsers(ctx, cols.Users)
	metrics.RecordDBQuery("INSERT", models.CollectionUser, time.Since(start), err)
	if err != nil {
		return "insert", fmt.Errorf("insert users: %w", err)
	}
	stats.Users = n
	metrics.RecordInserted(models.CollectionUser, n)

	start = time.Now()
	n, err = l.store.InsertActivities(ctx, cols.Activities)
	metrics.RecordDBQuery("INSERT", models.CollectionActivity, time.Since(start), err)
	if err != nil {
		return "insert", fmt.Errorf("insert activities: %w", err)
	}
	stats.Activities = n
	metrics.RecordInserted(models.CollectionActivity, n)

	if err := l.insertTrackPoints(ctx, cols.TrackPoints, stats); err != nil {
		return "insert", err
	}
	return "", nil
}

// parse runs the dataset parser with an optional progress bar.
func (l *Loader) parse(ctx context.Context) (*dataset.Collections, error) {
	opts := dataset.OptionsFromConfig(&l.dataset)

	var bar *progressbar.ProgressBar
	if l.barOutput != nil {
		total, err := dataset.CountFiles(opts.DataDir)
		if err != nil {
			return nil, err
		}
		bar = newProgressBar(l.barOutput, total, "Preparing insert")
	}

	opts.OnFile = func(_ string, source dataset.RecordSource) {
		metrics.RecordFileParsed(source.String())
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	cols, err := dataset.Parse(ctx, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	return cols, err
}

// insertTrackPoints writes points in consecutive batches; the remainder
// batch goes last. Each batch commits independently.
func (l *Loader) insertTrackPoints(ctx context.Context, points []models.TrackPoint, stats *Stats) error {
	size := l.ingest.BatchSize
	for start := 0; start < len(points); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, len(points))

		begin := time.Now()
		n, err := l.store.InsertTrackPointsBatch(ctx, points[start:end])
		metrics.RecordDBQuery("INSERT", models.CollectionTrackPoint, time.Since(begin), err)
		if err != nil {
			return fmt.Errorf("insert trackpoints [%d:%d]: %w", start, end, err)
		}

		stats.TrackPoints += n
		stats.Batches++
		metrics.RecordInserted(models.CollectionTrackPoint, n)
		metrics.RecordBatch()

		logging.Ctx(ctx).Debug().
			Int("batch", stats.Batches).
			Int("inserted", stats.TrackPoints).
			Int("total", len(points)).
			Msg("Trackpoint batch committed")
	}
	return nil
}

// newProgressBar renders a count bar on w.
func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
